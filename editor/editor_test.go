package editor

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"prettyedit/buffer"
	"prettyedit/clipboardx"
	"prettyedit/config"
	"prettyedit/format"

	"github.com/gdamore/tcell/v2"
)

func newTestEditor(t *testing.T, typed string, f buffer.Formatter) (*Editor, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 10)

	cfg := config.Default()
	cfg.FormatDelayMS = 0
	e := New(cfg, buffer.New(typed), Options{
		Formatter: f,
		Clipboard: &clipboardx.Clipboard{},
	})
	e.attach(screen)
	return e, screen
}

// waitFormat handles events until a formatter result has been applied.
func waitFormat(t *testing.T, e *Editor, screen tcell.Screen) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		evs := make(chan tcell.Event, 1)
		go func() { evs <- screen.PollEvent() }()
		select {
		case ev := <-evs:
			e.handleEvent(ev)
			if _, ok := ev.(*formatDoneEvent); ok {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for formatter result")
		}
	}
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(e *Editor, s string) {
	for _, r := range s {
		if r == '\n' {
			e.HandleKey(key(tcell.KeyEnter))
			continue
		}
		e.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestTypingEditsTypedText(t *testing.T) {
	e, _ := newTestEditor(t, "", nil)

	typeText(e, "ab c\nd")
	if got := e.buf.RenderTyped(); got != "ab c\nd" {
		t.Fatalf("expected typed text, got %q", got)
	}
	if !e.modified {
		t.Fatalf("expected buffer to be marked modified")
	}

	e.HandleKey(key(tcell.KeyBackspace2))
	e.HandleKey(key(tcell.KeyLeft))
	e.HandleKey(key(tcell.KeyBackspace))
	if got := e.buf.RenderTyped(); got != "ab \n" {
		t.Fatalf("expected backspaces to remove d and c, got %q", got)
	}

	e.HandleKey(key(tcell.KeyTab))
	if got := e.buf.RenderTyped(); got != "ab     \n" {
		t.Fatalf("expected tab to insert 4 spaces, got %q", got)
	}
}

func TestCtrlRunesAreNotInserted(t *testing.T) {
	e, _ := newTestEditor(t, "x", nil)
	e.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModAlt))
	if got := e.buf.RenderTyped(); got != "x" {
		t.Fatalf("expected Alt+a to be ignored, got %q", got)
	}
}

func TestFormatterResultIsReconciled(t *testing.T) {
	e, screen := newTestEditor(t, "", format.Text{})
	screen.SetSize(12, 5)

	typeText(e, "the quick brown fox")
	if !e.buf.Dirty {
		t.Fatalf("expected typing to dirty the buffer")
	}
	waitFormat(t, e, screen)

	if got := e.buf.Render(); got != "the quick \nbrown fox" {
		t.Fatalf("expected wrapped render, got %q", got)
	}
	if got := e.buf.RenderTyped(); got != "the quick brown fox" {
		t.Fatalf("expected typed text untouched, got %q", got)
	}
	if e.buf.Dirty {
		t.Fatalf("expected reconcile to clear Dirty")
	}
}

func TestStaleFormatterResultIsDropped(t *testing.T) {
	release := make(chan struct{})
	slow := format.Func(func(s string, w int) (string, bool) {
		<-release
		return strings.ReplaceAll(s, ",", ", "), true
	})
	e, screen := newTestEditor(t, "a,b", slow)
	e.cfg.FormatDelayMS = 60000

	e.startFormat()
	typeText(e, "c")
	e.stopFormatTimer()
	close(release)

	waitFormat(t, e, screen)
	if got := e.buf.Render(); got != "a,bc" {
		t.Fatalf("expected stale result to be ignored, got %q", got)
	}
	if !e.buf.Dirty {
		t.Fatalf("expected buffer to stay dirty")
	}
}

func TestFormatterFailureKeepsBuffer(t *testing.T) {
	var logs bytes.Buffer
	failing := format.Func(func(string, int) (string, bool) { return "", false })
	e, screen := newTestEditor(t, "x", failing)
	e.log = log.New(&logs, "", 0)

	typeText(e, "y")
	waitFormat(t, e, screen)

	if !e.buf.Dirty || !e.lastFailed {
		t.Fatalf("expected failed format to leave the buffer dirty")
	}
	e.Draw()
	if e.statusBar.Format != "format failed" {
		t.Fatalf("expected failure in status, got %q", e.statusBar.Format)
	}
}

func TestDriftIsLogged(t *testing.T) {
	var logs bytes.Buffer
	lossy := format.Func(func(s string, w int) (string, bool) { return "ab", true })
	e, screen := newTestEditor(t, "abc", lossy)
	e.log = log.New(&logs, "", 0)

	e.startFormat()
	waitFormat(t, e, screen)

	if e.buf.Alignment().Aligned() {
		t.Fatalf("expected drift to be reported")
	}
	if !strings.Contains(logs.String(), "drift") {
		t.Fatalf("expected drift to be logged, got %q", logs.String())
	}
	e.Draw()
	if e.statusBar.Format != "drift" {
		t.Fatalf("expected drift in status, got %q", e.statusBar.Format)
	}
}

func TestDrawStylesVirtualWhitespace(t *testing.T) {
	e, screen := newTestEditor(t, "a,b", nil)
	e.buf.Reconcile("a, b")
	e.Draw()

	theme := e.cfg.GetTheme()
	r, _, style, _ := screen.GetContent(2, 0)
	fg, _, _ := style.Decompose()
	if r != ' ' || fg != theme.Virtual {
		t.Fatalf("expected dim virtual space at col 2, got %q fg=%v", r, fg)
	}
	r, _, style, _ = screen.GetContent(3, 0)
	fg, _, _ = style.Decompose()
	if r != 'b' || fg != theme.Foreground {
		t.Fatalf("expected typed b at col 3, got %q fg=%v", r, fg)
	}
}

func TestDrawSplitCaret(t *testing.T) {
	e, screen := newTestEditor(t, "a,b", nil)
	e.buf.Reconcile("a, b")
	e.buf.MoveRight()
	e.buf.MoveRight()

	caret := e.buf.CursorPosition()
	if !caret.Split() {
		t.Fatalf("expected split caret before b, got %+v", caret)
	}

	e.Draw()
	x, y, visible := screen.GetCursor()
	if !visible || x != 3 || y != 0 {
		t.Fatalf("expected cursor at virtual end (3,0), got (%d,%d) visible=%v", x, y, visible)
	}
	_, _, style, _ := screen.GetContent(2, 0)
	_, bg, _ := style.Decompose()
	if bg != e.cfg.GetTheme().Caret {
		t.Fatalf("expected caret start marked at col 2, got bg=%v", bg)
	}
	if !e.statusBar.Split {
		t.Fatalf("expected status to show split caret")
	}
}

func TestDrawWideRunes(t *testing.T) {
	e, screen := newTestEditor(t, "世界x", nil)
	e.buf.MoveRight()
	e.buf.MoveRight()
	e.Draw()

	if x, _, _ := screen.GetCursor(); x != 4 {
		t.Fatalf("expected cursor after two wide runes at cell 4, got %d", x)
	}
}

func TestDrawScrollsToCaret(t *testing.T) {
	e, screen := newTestEditor(t, strings.Repeat("x\n", 30), nil)
	for i := 0; i < 60; i++ {
		e.buf.MoveRight()
	}
	e.Draw()

	_, y, _ := screen.GetCursor()
	if e.scrollY == 0 || y < 0 || y >= 9 {
		t.Fatalf("expected caret scrolled into view, scrollY=%d y=%d", e.scrollY, y)
	}
}

func TestClipboardKeys(t *testing.T) {
	e, _ := newTestEditor(t, "a b", nil)

	e.HandleKey(key(tcell.KeyCtrlC))
	if got := e.clip.Read(); got != "a b" {
		t.Fatalf("expected typed text copied, got %q", got)
	}

	e.clip.Write("x\r\ny")
	e.HandleKey(key(tcell.KeyCtrlV))
	if got := e.buf.RenderTyped(); got != "x\nya b" {
		t.Fatalf("expected paste at caret, got %q", got)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.txt")
	e, _ := newTestEditor(t, "hello", nil)
	e.opt.Path = path

	typeText(e, "> ")
	e.HandleKey(key(tcell.KeyCtrlS))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "> hello" {
		t.Fatalf("expected typed text saved, got %q", data)
	}
	if e.modified {
		t.Fatalf("expected save to clear modified")
	}
}

func TestQuitAsksTwiceWhenModified(t *testing.T) {
	e, _ := newTestEditor(t, "", nil)
	typeText(e, "x")

	e.HandleKey(key(tcell.KeyCtrlQ))
	if e.quit {
		t.Fatalf("expected first Ctrl+Q to warn about unsaved changes")
	}
	e.HandleKey(key(tcell.KeyCtrlQ))
	if !e.quit {
		t.Fatalf("expected second Ctrl+Q to quit")
	}
}

func TestReloadConfigRebuildsFormatter(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	defer screen.Fini()

	e := New(config.Default(), buffer.New("x"), Options{
		Language:     "Haskell",
		EditorConfig: &config.EditorConfigSettings{MaxLineLength: 50},
		Clipboard:    &clipboardx.Clipboard{},
	})
	e.attach(screen)
	if e.formatter != nil {
		t.Fatalf("expected no formatter for Haskell")
	}

	cfg := config.Default()
	cfg.Formatters["haskell"] = []string{"ormolu"}
	e.reloadConfig(cfg)

	if _, ok := e.formatter.(*format.Command); !ok {
		t.Fatalf("expected configured command after reload, got %T", e.formatter)
	}
	if e.cfg.MaxWidth != 50 {
		t.Fatalf("expected editorconfig to be reapplied, got max width %d", e.cfg.MaxWidth)
	}
	e.stopFormatTimer()
}
