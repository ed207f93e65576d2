package clipboardx

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestRegisterFallback(t *testing.T) {
	c := &Clipboard{}
	if c.Write("fn main() {}") {
		t.Fatalf("expected no system channel to accept the text")
	}
	if got := c.Read(); got != "fn main() {}" {
		t.Fatalf("expected register contents, got %q", got)
	}
}

func TestReadNormalizesLineEndings(t *testing.T) {
	c := &Clipboard{}
	c.Write("a\r\nb\r\n")
	if got := c.Read(); got != "a\nb\n" {
		t.Fatalf("expected LF line endings, got %q", got)
	}
}

func TestOSC52(t *testing.T) {
	var term bytes.Buffer
	c := &Clipboard{Terminal: &term}
	if !c.Write("hi") {
		t.Fatalf("expected OSC 52 write to succeed")
	}
	want := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte("hi")) + "\x07"
	if term.String() != want {
		t.Fatalf("expected %q, got %q", want, term.String())
	}

	term.Reset()
	c.Write("")
	if term.Len() != 0 {
		t.Fatalf("expected empty text to skip OSC 52, got %q", term.String())
	}
}
