package buffer

// Element is one typed character together with the whitespace typed before
// it. The last element of a buffer carries no character and only holds the
// trailing whitespace.
type Element struct {
	Whitespace Whitespace

	char rune
	end  bool
}

func charElement(r rune, ws Whitespace) Element {
	return Element{Whitespace: ws, char: r}
}

func endElement(ws Whitespace) Element {
	return Element{Whitespace: ws, end: true}
}

// Char returns the element's character; ok is false for the end of buffer.
func (e Element) Char() (r rune, ok bool) {
	if e.end {
		return 0, false
	}
	return e.char, true
}

func (e Element) End() bool { return e.end }

func (e Element) Render() string {
	s := e.Whitespace.Render()
	if !e.end {
		s += string(e.char)
	}
	return s
}
