package buffer

// Formatter turns source text into its pretty form for a given width. ok is
// false when the source could not be formatted.
type Formatter interface {
	Format(source string, width int) (formatted string, ok bool)
}

// Alignment describes how well the last formatter output lined up with the
// typed characters.
type Alignment struct {
	// Missed lists elements whose character was not found where expected.
	// Commas are left out since formatters add and drop them freely.
	Missed []int
	// Leftover counts runes of formatted text that no element consumed.
	Leftover int
}

func (a Alignment) Aligned() bool {
	return len(a.Missed) == 0 && a.Leftover == 0
}

// Reconcile replays formatted against the elements and overwrites every
// run's virtual whitespace. It is a best-effort aligner: when the formatted
// text changes more than whitespace and commas the affected elements end up
// under-reconciled and the drift is reported in the returned Alignment.
func (b *Buffer) Reconcile(formatted string) Alignment {
	src := []rune(formatted)
	pos := 0
	var align Alignment

	for i := range b.elements {
		e := &b.elements[i]
		char, hasChar := e.Char()
		newlines, spaces := 0, 0
		matched := false

	scan:
		for pos < len(src) {
			switch c := src[pos]; {
			case c == '\n':
				newlines++
				spaces = 0
				pos++
			case c == ' ':
				spaces++
				pos++
			case hasChar && c == char:
				pos++
				matched = true
				break scan
			case c == ',':
				pos++
			default:
				break scan
			}
		}

		e.Whitespace.VirtualNewlines = newlines
		e.Whitespace.VirtualSpaces = spaces
		if hasChar && !matched && char != ',' {
			align.Missed = append(align.Missed, i)
		}
	}
	align.Leftover = len(src) - pos

	b.alignment = align
	b.cursor.Across = false
	b.clampCursor()
	return align
}

// Alignment returns the result of the last reconciliation.
func (b *Buffer) Alignment() Alignment { return b.alignment }

// Reformat formats the typed text and reconciles the result. When the
// formatter fails the buffer is left exactly as it was.
func (b *Buffer) Reformat(f Formatter, width int) (string, bool) {
	if f == nil {
		return "", false
	}
	formatted, ok := f.Format(b.RenderTyped(), width)
	if !ok {
		return "", false
	}
	b.Reconcile(formatted)
	b.Dirty = false
	return formatted, true
}
