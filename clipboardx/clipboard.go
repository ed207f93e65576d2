// Package clipboardx moves typed text between the editor and the system
// clipboard, falling back to helper commands, OSC 52 and finally an
// in-process register.
package clipboardx

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

type helper struct {
	name string
	args []string
}

var (
	copyHelpers = []helper{
		{"wl-copy", nil},
		{"xclip", []string{"-selection", "clipboard"}},
		{"xsel", []string{"--clipboard", "--input"}},
		{"pbcopy", nil},
		{"clip.exe", nil},
	}
	pasteHelpers = []helper{
		{"wl-paste", []string{"--no-newline"}},
		{"xclip", []string{"-o", "-selection", "clipboard"}},
		{"xsel", []string{"--clipboard", "--output"}},
		{"pbpaste", nil},
		{"powershell.exe", []string{"-NoProfile", "-Command", "Get-Clipboard"}},
	}
)

// Clipboard is safe to use from the editor's event loop only.
type Clipboard struct {
	// System disables the OS clipboard and helper commands when false,
	// leaving only the in-process register.
	System bool
	// Terminal receives OSC 52 sequences. Nil disables them.
	Terminal io.Writer

	register string
}

// New returns a clipboard wired to the OS clipboard and, when stdout is a
// terminal, to OSC 52.
func New() *Clipboard {
	c := &Clipboard{System: true}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		c.Terminal = os.Stdout
	}
	return c
}

// Write stores text and reports whether any system channel accepted it.
func (c *Clipboard) Write(text string) bool {
	c.register = text
	ok := false

	if c.System {
		if err := clipboard.WriteAll(text); err == nil {
			ok = true
		}
		if runCopyHelpers(text) {
			ok = true
		}
	}
	if c.writeOSC52(text) {
		ok = true
	}
	return ok
}

// Read returns the clipboard contents with line endings normalized to '\n'.
func (c *Clipboard) Read() string {
	text := c.register
	if c.System {
		if s, err := clipboard.ReadAll(); err == nil && s != "" {
			text = s
		} else if s, ok := runPasteHelpers(); ok {
			text = s
		}
	}
	return strings.ReplaceAll(text, "\r\n", "\n")
}

func runCopyHelpers(text string) bool {
	ok := false
	for _, h := range copyHelpers {
		if _, err := exec.LookPath(h.name); err != nil {
			continue
		}
		cmd := exec.Command(h.name, h.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			ok = true
		}
	}
	return ok
}

func runPasteHelpers() (string, bool) {
	for _, h := range pasteHelpers {
		if _, err := exec.LookPath(h.name); err != nil {
			continue
		}
		out, err := exec.Command(h.name, h.args...).Output()
		if err == nil && len(out) > 0 {
			return string(out), true
		}
	}
	return "", false
}

func (c *Clipboard) writeOSC52(text string) bool {
	if c.Terminal == nil || text == "" {
		return false
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(c.Terminal, "\x1b]52;c;%s\x07", encoded)
	return err == nil
}
