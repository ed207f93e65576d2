package buffer

// Insert types r at the caret. Spaces and newlines go into the current run;
// any other rune becomes a new element that takes the whitespace left of the
// caret with it.
func (b *Buffer) Insert(r rune) {
	across := b.cursor.Across
	b.cursor.Across = false
	b.Dirty = true

	ws := &b.current().Whitespace
	if s, ok := symbolFor(r); ok {
		ws.insert(b.cursor.Offset, s)
		b.cursor.Offset++
		return
	}

	at := min(b.cursor.Offset, len(ws.Typed))
	left := append([]Symbol(nil), ws.Typed[:at]...)
	right := append([]Symbol(nil), ws.Typed[at:]...)

	created := Whitespace{Typed: left}
	if across {
		// The caret was drawn after the virtual whitespace, so the new
		// character has to land there too.
		created.VirtualNewlines, created.VirtualSpaces = ws.VirtualNewlines, ws.VirtualSpaces
		ws.clearVirtual()
	}
	ws.Typed = right

	b.insertElement(b.cursor.Element, charElement(r, created))
	b.cursor = Cursor{Element: b.cursor.Element + 1}
}

// InsertString inserts every rune of s in order. Carriage returns are
// dropped.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		if r == '\r' {
			continue
		}
		b.Insert(r)
	}
}

// Backspace deletes the symbol left of the caret. At the first slot of a run
// that is the previous element's character, and the two runs around it are
// fused.
func (b *Buffer) Backspace() {
	if b.cursor.Across {
		b.cursor.Across = false
		return
	}

	switch {
	case b.cursor.Offset > 0:
		b.current().Whitespace.remove(b.cursor.Offset - 1)
		b.cursor.Offset--
	case b.cursor.Element > 0:
		prev := b.cursor.Element - 1
		join := len(b.elements[prev].Whitespace.Typed)
		b.joinRuns(prev)
		b.cursor = Cursor{Element: prev, Offset: join}
	default:
		return
	}
	b.Dirty = true
}

// Delete removes the symbol right of the caret. Inside a run that is a typed
// whitespace symbol; at the last slot it is the element's own character. A
// caret split by virtual whitespace is first moved across it.
func (b *Buffer) Delete() {
	if !b.atLastSlot() {
		b.cursor.Across = false
		b.current().Whitespace.remove(b.cursor.Offset)
		b.Dirty = true
		return
	}

	if !b.cursor.Across && b.caret().Split() {
		b.cursor.Across = true
		return
	}
	b.cursor.Across = false
	if b.atLastElement() {
		return
	}

	b.joinRuns(b.cursor.Element)
	b.clampCursor()
	b.Dirty = true
}

// joinRuns drops the character of element i and merges its run in front of
// the run of element i+1, which then takes its place.
func (b *Buffer) joinRuns(i int) {
	merged := b.elements[i].Whitespace.merge(b.elements[i+1].Whitespace)
	b.elements[i+1].Whitespace = merged
	b.removeElement(i)
}
