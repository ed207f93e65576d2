package format

import (
	"bytes"
	"context"
	"io"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 2 * time.Second

// Command runs an external formatter: source on stdin, result on stdout.
// A "{width}" placeholder in Args is replaced with the requested width.
// Output on stderr counts as a failure even when the exit status is zero.
type Command struct {
	Name    string
	Args    []string
	Timeout time.Duration
	Logger  *log.Logger
}

func (c *Command) Format(source string, width int) (string, bool) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := c.run(ctx, source, width)
	if err != nil {
		c.logger().Printf("%s: %v", c.Name, err)
		return "", false
	}
	return out, true
}

func (c *Command) run(ctx context.Context, source string, width int) (string, error) {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = strings.ReplaceAll(a, "{width}", strconv.Itoa(width))
	}

	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 100 * time.Millisecond

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", &commandError{msg: strings.ReplaceAll(msg, "<standard input>", "buffer"), err: err}
		}
		return "", err
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return "", &commandError{msg: strings.ReplaceAll(msg, "<standard input>", "buffer")}
	}
	return stdout.String(), nil
}

func (c *Command) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return c.Logger
}

type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string {
	if e.err != nil {
		return e.err.Error() + ": " + e.msg
	}
	return e.msg
}

func (e *commandError) Unwrap() error { return e.err }
