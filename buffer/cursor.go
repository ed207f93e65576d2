package buffer

import "strings"

// Cursor addresses a caret slot inside the typed whitespace of one element.
// Offset 0 is in front of the first typed symbol; the last slot sits right
// before the element's character.
type Cursor struct {
	Element, Offset int

	// Across is set once the caret has been pushed past the virtual
	// whitespace that follows its last slot.
	Across bool
}

// Position is a visual line/column in the rendered text. Columns count runes.
type Position struct {
	Line, Col int
}

func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Col == other.Col
}

// Caret is where the cursor is drawn. Start and End differ only when the
// caret abuts virtual whitespace that the user has not typed.
type Caret struct {
	Start, End Position
}

func (c Caret) Split() bool { return !c.Start.Equal(c.End) }

func (b *Buffer) Cursor() Cursor { return b.cursor }

// SetCursor moves the caret, clamping it into the buffer.
func (b *Buffer) SetCursor(c Cursor) {
	b.cursor = c
	b.clampCursor()
	if b.cursor.Across && (!b.atLastSlot() || !b.caret().Split()) {
		b.cursor.Across = false
	}
}

// CursorPosition translates the caret into visual coordinates.
func (b *Buffer) CursorPosition() Caret {
	c := b.caret()
	if b.cursor.Across {
		c.Start = c.End
	}
	return c
}

func (b *Buffer) caret() Caret {
	var sb strings.Builder
	for _, e := range b.elements[:b.cursor.Element] {
		sb.WriteString(e.Render())
	}
	prefix := sb.String()

	line := strings.Count(prefix, "\n")
	col := len([]rune(prefix[strings.LastIndexByte(prefix, '\n')+1:]))

	ws := b.current().Whitespace
	virtualEnd := Position{Line: line + ws.VirtualNewlines, Col: col + ws.VirtualSpaces}
	if ws.VirtualNewlines > 0 {
		virtualEnd.Col = ws.VirtualSpaces
	}

	for _, s := range ws.Typed[:b.cursor.Offset] {
		if s == Newline {
			line++
			col = 0
		} else {
			col++
		}
	}

	start := Position{Line: line, Col: col}
	end := start
	if b.atLastSlot() && start.Before(virtualEnd) {
		end = virtualEnd
	}
	return Caret{Start: start, End: end}
}

// MoveLeft moves the caret one slot back, crossing into the previous
// element's last slot at a run boundary.
func (b *Buffer) MoveLeft() {
	if b.cursor.Across {
		b.cursor.Across = false
		return
	}
	switch {
	case b.cursor.Offset > 0:
		b.cursor.Offset--
	case b.cursor.Element > 0:
		b.cursor.Element--
		b.cursor.Offset = b.current().Whitespace.Slots() - 1
	}
}

// MoveRight moves the caret one slot forward, stepping over the element's
// character at the end of its run.
func (b *Buffer) MoveRight() {
	b.cursor.Across = false
	switch {
	case !b.atLastSlot():
		b.cursor.Offset++
	case !b.atLastElement():
		b.cursor.Element++
		b.cursor.Offset = 0
	}
}
