// Package format provides the formatters a buffer can reconcile against:
// the Go printer, external formatter commands, and plain-text word wrap.
package format

import (
	"io"
	"log"
	"strings"
	"time"
)

// Formatter returns the pretty form of source for the given width, or
// ok=false if source could not be formatted.
type Formatter interface {
	Format(source string, width int) (formatted string, ok bool)
}

// Func adapts a plain function to Formatter.
type Func func(source string, width int) (string, bool)

func (f Func) Format(source string, width int) (string, bool) {
	return f(source, width)
}

type Options struct {
	// Commands maps a language name to a formatter command line.
	Commands map[string][]string
	TabSize  int
	Timeout  time.Duration
	Logger   *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// ForLanguage picks the formatter for a language as reported by Detect. A
// configured command wins over the built-in formatters. It returns nil when
// nothing can format the language.
func ForLanguage(lang string, opt Options) Formatter {
	for name, argv := range opt.Commands {
		if strings.EqualFold(name, lang) && len(argv) > 0 {
			return &Command{
				Name:    argv[0],
				Args:    argv[1:],
				Timeout: opt.Timeout,
				Logger:  opt.logger(),
			}
		}
	}

	switch strings.ToLower(lang) {
	case "go":
		return &Go{TabSize: opt.TabSize, Logger: opt.logger()}
	case "", "plaintext", "text", "markdown", "restructuredtext":
		return Text{}
	}
	return nil
}
