package ui

import (
	"strings"
	"testing"

	"prettyedit/config"

	"github.com/gdamore/tcell/v2"
)

func rowText(screen tcell.Screen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestStatusBarRender(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	defer screen.Fini()

	s := NewStatusBar()
	s.Filename = "main.rs"
	s.Language = "Rust"
	s.Line, s.Col = 2, 4
	s.Split = true
	s.Modified = true
	s.Format = FormatDrift
	s.Render(screen, 0, 0, 60)

	row := rowText(screen, 0, 60)
	for _, want := range []string{"main.rs [+]", "Ln 3, Col 5~", "Rust", "drift"} {
		if !strings.Contains(row, want) {
			t.Fatalf("expected %q in status row %q", want, row)
		}
	}

	col := len([]rune(row[:strings.Index(row, "drift")]))
	_, _, style, _ := screen.GetContent(col, 0)
	fg, _, _ := style.Decompose()
	if fg != config.Themes["monokai"].Warning {
		t.Fatalf("expected drift drawn in warning color, got %v", fg)
	}
}

func TestStatusBarDropsRightSideWhenNarrow(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	defer screen.Fini()

	s := NewStatusBar()
	s.Message = "Unsaved changes. Press Ctrl+Q again to quit"
	s.Render(screen, 0, 0, 30)

	row := rowText(screen, 0, 30)
	if !strings.HasPrefix(row, " untitled  Unsaved") {
		t.Fatalf("expected message after file name, got %q", row)
	}
	if strings.Contains(row, FormatOff) {
		t.Fatalf("expected right side dropped, got %q", row)
	}
}
