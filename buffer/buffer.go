package buffer

import "strings"

// Buffer holds the typed text of a document as a sequence of elements and a
// single caret. The rendering a formatter would produce is layered on top as
// virtual whitespace.
type Buffer struct {
	elements []Element
	cursor   Cursor

	// Dirty is set by every edit and cleared once a formatter result has
	// been reconciled.
	Dirty bool

	alignment Alignment
}

// New parses typed text. Spaces and newlines accumulate into the run in
// front of the next character; whatever is left trails in the end element.
func New(typed string) *Buffer {
	var elements []Element
	var pending []Symbol
	for _, r := range typed {
		if s, ok := symbolFor(r); ok {
			pending = append(pending, s)
			continue
		}
		elements = append(elements, charElement(r, Whitespace{Typed: pending}))
		pending = nil
	}
	elements = append(elements, endElement(Whitespace{Typed: pending}))

	return &Buffer{elements: elements}
}

// NewFormatted parses typed text and reconciles it against formatted.
func NewFormatted(typed, formatted string) *Buffer {
	b := New(typed)
	b.Reconcile(formatted)
	return b
}

func (b *Buffer) Len() int { return len(b.elements) }

func (b *Buffer) Element(i int) Element {
	if i < 0 || i >= len(b.elements) {
		return Element{}
	}
	return b.elements[i]
}

// Render returns the display text: typed content plus virtual whitespace.
func (b *Buffer) Render() string {
	var sb strings.Builder
	for _, e := range b.elements {
		sb.WriteString(e.Render())
	}
	return sb.String()
}

// RenderTyped returns exactly what the user typed, ignoring virtual
// whitespace. This is the text handed to a formatter.
func (b *Buffer) RenderTyped() string {
	var sb strings.Builder
	for _, e := range b.elements {
		e.Whitespace.renderTyped(&sb)
		if r, ok := e.Char(); ok {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Segment is a piece of rendered text that is either typed or virtual.
type Segment struct {
	Text    string
	Virtual bool
}

// Segments splits Render into typed and virtual pieces. Adjacent pieces of
// the same kind are joined, so concatenating the texts yields Render.
func (b *Buffer) Segments() []Segment {
	var segs []Segment
	add := func(text string, virtual bool) {
		if text == "" {
			return
		}
		if n := len(segs); n > 0 && segs[n-1].Virtual == virtual {
			segs[n-1].Text += text
			return
		}
		segs = append(segs, Segment{Text: text, Virtual: virtual})
	}

	for _, e := range b.elements {
		var sb strings.Builder
		e.Whitespace.renderTyped(&sb)
		add(sb.String(), false)
		add(e.Whitespace.virtualSuffix(), true)
		if r, ok := e.Char(); ok {
			add(string(r), false)
		}
	}
	return segs
}

// ClearVirtual drops all virtual whitespace.
func (b *Buffer) ClearVirtual() {
	for i := range b.elements {
		b.elements[i].Whitespace.clearVirtual()
	}
	b.cursor.Across = false
	b.alignment = Alignment{}
}

func (b *Buffer) clampCursor() {
	if b.cursor.Element < 0 {
		b.cursor.Element = 0
	}
	if b.cursor.Element >= len(b.elements) {
		b.cursor.Element = len(b.elements) - 1
	}
	typed := len(b.elements[b.cursor.Element].Whitespace.Typed)
	if b.cursor.Offset < 0 {
		b.cursor.Offset = 0
	}
	if b.cursor.Offset > typed {
		b.cursor.Offset = typed
	}
}

func (b *Buffer) current() *Element {
	return &b.elements[b.cursor.Element]
}

func (b *Buffer) atLastSlot() bool {
	return b.cursor.Offset >= b.current().Whitespace.Slots()-1
}

func (b *Buffer) atLastElement() bool {
	return b.cursor.Element == len(b.elements)-1
}

func (b *Buffer) insertElement(at int, e Element) {
	b.elements = append(b.elements, Element{})
	copy(b.elements[at+1:], b.elements[at:])
	b.elements[at] = e
}

func (b *Buffer) removeElement(at int) {
	b.elements = append(b.elements[:at], b.elements[at+1:]...)
}
