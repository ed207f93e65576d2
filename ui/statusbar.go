package ui

import (
	"fmt"

	"prettyedit/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Format states shown on the right of the status bar.
const (
	FormatOff     = "no formatter"
	FormatPending = "pending"
	FormatClean   = "formatted"
	FormatFailed  = "format failed"
	FormatDrift   = "drift"
)

type StatusBar struct {
	Filename string
	Language string
	Line     int
	Col      int
	Split    bool // caret abuts virtual whitespace
	Modified bool
	Format   string
	Message  string // temporary status message
	IsError  bool
	Theme    *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{Format: FormatOff}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	warnStyle := style.Foreground(theme.Warning).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	left := " " + s.Filename
	if s.Filename == "" {
		left = " untitled"
	}
	if s.Modified {
		left += " [+]"
	}
	msgStyle := style
	if s.Message != "" {
		left += "  " + s.Message
		if s.IsError {
			msgStyle = warnStyle
		}
	}
	col := putString(screen, x, y, x+width, left, msgStyle)

	caret := fmt.Sprintf("Ln %d, Col %d", s.Line+1, s.Col+1)
	if s.Split {
		caret += "~"
	}
	lang := s.Language
	if lang == "" {
		lang = "text"
	}
	info := fmt.Sprintf("%s │ %s │ ", caret, lang)
	format := s.Format + " "

	start := x + width - runewidth.StringWidth(info) - runewidth.StringWidth(format)
	if start <= col+1 {
		return
	}
	fmtStyle := style
	if s.Format == FormatFailed || s.Format == FormatDrift {
		fmtStyle = warnStyle
	}
	next := putString(screen, start, y, x+width, info, style)
	putString(screen, next, y, x+width, format, fmtStyle)
}

// putString draws str from column x, stopping before limit, and returns the
// column after the last cell drawn.
func putString(screen tcell.Screen, x, y, limit int, str string, style tcell.Style) int {
	for _, ch := range str {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}
