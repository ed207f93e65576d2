package buffer

import "strings"

// Symbol is a single typed whitespace character.
type Symbol int

const (
	Space Symbol = iota
	Newline
)

func (s Symbol) String() string {
	if s == Newline {
		return "\n"
	}
	return " "
}

// symbolFor reports whether r is typed whitespace and which symbol it maps to.
func symbolFor(r rune) (Symbol, bool) {
	switch r {
	case ' ':
		return Space, true
	case '\n':
		return Newline, true
	}
	return 0, false
}

// Whitespace is the run of whitespace in front of one character. Typed holds
// what the user entered; the virtual counts hold what the formatter wants on
// top of that and are only ever rendered, never addressed by the cursor.
type Whitespace struct {
	Typed           []Symbol
	VirtualNewlines int
	VirtualSpaces   int // on the last line
}

// Slots is the number of caret positions inside the run.
func (w Whitespace) Slots() int {
	return len(w.Typed) + 1
}

func (w Whitespace) TypedNewlines() int {
	n := 0
	for _, s := range w.Typed {
		if s == Newline {
			n++
		}
	}
	return n
}

// TrailingSpaces counts the typed spaces after the last typed newline.
func (w Whitespace) TrailingSpaces() int {
	n := 0
	for i := len(w.Typed) - 1; i >= 0 && w.Typed[i] != Newline; i-- {
		n++
	}
	return n
}

func (w Whitespace) HasVirtual() bool {
	return w.VirtualNewlines > 0 || w.VirtualSpaces > 0
}

func (w Whitespace) renderTyped(sb *strings.Builder) {
	for _, s := range w.Typed {
		sb.WriteString(s.String())
	}
}

// virtualSuffix is the whitespace the formatter adds after the typed part.
// It only extends what was typed and never applies to an earlier line.
func (w Whitespace) virtualSuffix() string {
	newlines := w.TypedNewlines()
	switch {
	case newlines < w.VirtualNewlines:
		return strings.Repeat("\n", w.VirtualNewlines-newlines) + strings.Repeat(" ", w.VirtualSpaces)
	case newlines == w.VirtualNewlines:
		if spaces := w.TrailingSpaces(); spaces < w.VirtualSpaces {
			return strings.Repeat(" ", w.VirtualSpaces-spaces)
		}
	}
	return ""
}

func (w Whitespace) Render() string {
	var sb strings.Builder
	w.renderTyped(&sb)
	sb.WriteString(w.virtualSuffix())
	return sb.String()
}

func (w *Whitespace) insert(at int, s Symbol) {
	if at > len(w.Typed) {
		at = len(w.Typed)
	}
	w.Typed = append(w.Typed, 0)
	copy(w.Typed[at+1:], w.Typed[at:])
	w.Typed[at] = s
}

func (w *Whitespace) remove(at int) {
	if at < 0 || at >= len(w.Typed) {
		return
	}
	w.Typed = append(w.Typed[:at], w.Typed[at+1:]...)
}

// merge joins w with the run that follows it once the character between them
// is gone. Virtual spaces only add up when no virtual newline of next starts a
// fresh line.
func (w Whitespace) merge(next Whitespace) Whitespace {
	typed := make([]Symbol, 0, len(w.Typed)+len(next.Typed))
	typed = append(typed, w.Typed...)
	typed = append(typed, next.Typed...)

	spaces := next.VirtualSpaces
	if next.VirtualNewlines == 0 {
		spaces += w.VirtualSpaces
	}
	return Whitespace{
		Typed:           typed,
		VirtualNewlines: w.VirtualNewlines + next.VirtualNewlines,
		VirtualSpaces:   spaces,
	}
}

func (w *Whitespace) clearVirtual() {
	w.VirtualNewlines = 0
	w.VirtualSpaces = 0
}
