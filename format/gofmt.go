package format

import (
	"bytes"
	"go/parser"
	"go/printer"
	"go/token"
	"log"
)

// Go formats Go source the way gofmt does, except that indentation and
// alignment use spaces: the buffer only knows spaces and newlines, so a tab
// in the output would never line up with typed text. Width is ignored since
// gofmt never wraps lines.
type Go struct {
	TabSize int
	Logger  *log.Logger
}

func (g *Go) Format(source string, _ int) (string, bool) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", source, parser.ParseComments)
	if err != nil {
		if g.Logger != nil {
			g.Logger.Printf("gofmt: %v", err)
		}
		return "", false
	}

	tabs := g.TabSize
	if tabs <= 0 {
		tabs = 4
	}
	cfg := printer.Config{Mode: printer.UseSpaces, Tabwidth: tabs}

	var buf bytes.Buffer
	if err := cfg.Fprint(&buf, fset, file); err != nil {
		if g.Logger != nil {
			g.Logger.Printf("gofmt: %v", err)
		}
		return "", false
	}
	return buf.String(), true
}
