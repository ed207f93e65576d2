package editor

import (
	"strings"

	"prettyedit/buffer"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// displayCol converts a rune column on a rendered line to a cell column, with
// tabs expanded and wide characters counted twice.
func displayCol(line string, col int, tabSize int) int {
	cells := 0
	for i, r := range []rune(line) {
		if i >= col {
			break
		}
		cells += cellWidth(r, cells, tabSize)
	}
	return cells
}

func cellWidth(r rune, at int, tabSize int) int {
	if r == '\t' {
		return tabSize - at%tabSize
	}
	return runewidth.RuneWidth(r)
}

// Draw paints the buffer, the caret and the status bar.
func (e *Editor) Draw() {
	theme := e.cfg.GetTheme()
	tabSize := max(e.cfg.TabSize, 1)

	base := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	virtual := base
	if e.cfg.ShowVirtual {
		virtual = base.Foreground(theme.Virtual)
	}
	e.screen.SetStyle(base)
	e.screen.Clear()

	screenW, screenH := e.screen.Size()
	textH := screenH - 1

	lines := strings.Split(e.buf.Render(), "\n")
	caret := e.buf.CursorPosition()
	startX, startY := e.caretCell(lines, caret.Start, tabSize)
	endX, endY := e.caretCell(lines, caret.End, tabSize)
	e.ensureVisible(endX, endY, screenW, textH)
	e.ensureVisible(startX, startY, screenW, textH)

	line, col := 0, 0
	for _, seg := range e.buf.Segments() {
		style := base
		if seg.Virtual {
			style = virtual
		}
		for _, r := range seg.Text {
			if r == '\n' {
				line++
				col = 0
				continue
			}
			w := cellWidth(r, col, tabSize)
			if r == '\t' {
				for i := 0; i < w; i++ {
					e.setCell(col+i, line, ' ', style, screenW, textH)
				}
			} else if w > 0 {
				e.setCell(col, line, r, style, screenW, textH)
			}
			col += w
		}
	}

	if caret.Split() {
		x, y := startX-e.scrollX, startY-e.scrollY
		if x >= 0 && x < screenW && y >= 0 && y < textH {
			mainc, combc, style, _ := e.screen.GetContent(x, y)
			e.screen.SetContent(x, y, mainc, combc, style.Background(theme.Caret))
		}
	}
	e.screen.ShowCursor(endX-e.scrollX, endY-e.scrollY)

	e.updateStatus()
	e.statusBar.Render(e.screen, 0, screenH-1, screenW)
	e.screen.Show()
}

func (e *Editor) setCell(x, y int, r rune, style tcell.Style, w, h int) {
	x -= e.scrollX
	y -= e.scrollY
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	e.screen.SetContent(x, y, r, nil, style)
}

// caretCell converts a rendered position to unscrolled cell coordinates.
func (e *Editor) caretCell(lines []string, p buffer.Position, tabSize int) (x, y int) {
	if p.Line >= len(lines) {
		return 0, p.Line
	}
	return displayCol(lines[p.Line], p.Col, tabSize), p.Line
}

func (e *Editor) ensureVisible(x, y, w, h int) {
	if h <= 0 || w <= 0 {
		return
	}
	if y < e.scrollY {
		e.scrollY = y
	}
	if y >= e.scrollY+h {
		e.scrollY = y - h + 1
	}
	if x < e.scrollX {
		e.scrollX = x
	}
	if x >= e.scrollX+w {
		e.scrollX = x - w + 1
	}
}
