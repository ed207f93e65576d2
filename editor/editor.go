package editor

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"prettyedit/buffer"
	"prettyedit/clipboardx"
	"prettyedit/config"
	"prettyedit/format"
	"prettyedit/ui"

	"github.com/gdamore/tcell/v2"
)

type Options struct {
	// Path is the file being edited. Empty means an unnamed buffer.
	Path     string
	Language string

	// Formatter overrides the one picked from the language and settings.
	Formatter buffer.Formatter

	// ConfigPath is watched for changes while the editor runs.
	ConfigPath   string
	EditorConfig *config.EditorConfigSettings

	Clipboard *clipboardx.Clipboard
	Logger    *log.Logger
}

type Editor struct {
	screen tcell.Screen
	cfg    *config.Config
	buf    *buffer.Buffer
	opt    Options

	formatter buffer.Formatter
	clip      *clipboardx.Clipboard
	log       *log.Logger

	// generation counts edits; a pending format timer only fires for the
	// generation it was armed for.
	generation  int
	formatTimer *time.Timer
	formatWidth int
	lastFailed  bool

	scrollX, scrollY int
	statusBar        *ui.StatusBar
	modified         bool
	quit             bool
	quitPending      bool // true after first Ctrl+Q with unsaved changes

	statusMessageTime time.Time
}

type formatDueEvent struct {
	tcell.EventTime
	generation int
}

type formatDoneEvent struct {
	tcell.EventTime
	typed     string
	formatted string
	ok        bool
}

type configEvent struct {
	tcell.EventTime
	cfg *config.Config
}

func New(cfg *config.Config, buf *buffer.Buffer, opt Options) *Editor {
	e := &Editor{
		cfg:       cfg,
		buf:       buf,
		opt:       opt,
		clip:      opt.Clipboard,
		log:       opt.Logger,
		statusBar: ui.NewStatusBar(),
	}
	if e.log == nil {
		e.log = log.New(io.Discard, "", 0)
	}
	if e.clip == nil {
		e.clip = clipboardx.New()
	}
	e.cfg.ApplyEditorConfig(opt.EditorConfig)
	e.formatter = e.formatterFor(e.cfg)
	return e
}

func (e *Editor) formatterFor(cfg *config.Config) buffer.Formatter {
	if e.opt.Formatter != nil {
		return e.opt.Formatter
	}
	f := format.ForLanguage(e.opt.Language, format.Options{
		Commands: cfg.Formatters,
		TabSize:  cfg.TabSize,
		Timeout:  cfg.FormatTimeout(),
		Logger:   e.log,
	})
	if f == nil {
		return nil
	}
	return f
}

// Buffer returns the buffer being edited.
func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// Run opens the terminal and edits until the user quits.
func (e *Editor) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	if e.opt.ConfigPath != "" {
		stop, err := config.Watch(e.opt.ConfigPath, func(cfg *config.Config) {
			ev := &configEvent{cfg: cfg}
			ev.SetEventNow()
			screen.PostEvent(ev)
		})
		if err != nil {
			e.log.Printf("watch %s: %v", e.opt.ConfigPath, err)
		} else {
			defer stop()
		}
	}

	return e.RunScreen(screen)
}

// RunScreen runs the event loop on an initialized screen.
func (e *Editor) RunScreen(screen tcell.Screen) error {
	e.attach(screen)
	if !e.recoverBackup() {
		e.RestoreSession()
	}
	e.startFormat()

	stopBackups := make(chan struct{})
	e.startBackupTimer(stopBackups)

	for !e.quit {
		e.clearExpiredMessages()
		e.Draw()
		ev := screen.PollEvent()
		if ev == nil {
			break
		}
		e.handleEvent(ev)
	}

	close(stopBackups)
	e.stopFormatTimer()
	e.SaveSession()
	e.cleanBackup()
	screen.Clear()
	return nil
}

func (e *Editor) attach(screen tcell.Screen) {
	e.screen = screen
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()
}

func (e *Editor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
		if w, _ := e.screen.Size(); e.cfg.Width(w) != e.formatWidth {
			e.scheduleFormat()
		}
	case *tcell.EventKey:
		e.HandleKey(ev)
	case *formatDueEvent:
		if ev.generation == e.generation {
			e.startFormat()
		}
	case *formatDoneEvent:
		e.applyFormat(ev)
	case *configEvent:
		e.reloadConfig(ev.cfg)
	case *backupEvent:
		e.saveBackup()
	}
}

// scheduleFormat arms the debounce timer. Every call restarts the delay.
func (e *Editor) scheduleFormat() {
	if e.formatter == nil || e.screen == nil {
		return
	}
	e.stopFormatTimer()
	e.generation++
	gen := e.generation
	screen := e.screen
	e.formatTimer = time.AfterFunc(e.cfg.FormatDelay(), func() {
		ev := &formatDueEvent{generation: gen}
		ev.SetEventNow()
		screen.PostEvent(ev)
	})
}

func (e *Editor) stopFormatTimer() {
	if e.formatTimer != nil {
		e.formatTimer.Stop()
		e.formatTimer = nil
	}
}

// startFormat formats a snapshot of the typed text off the event loop. The
// result comes back as a formatDoneEvent.
func (e *Editor) startFormat() {
	e.stopFormatTimer()
	if e.formatter == nil || e.screen == nil {
		return
	}

	w, _ := e.screen.Size()
	e.formatWidth = e.cfg.Width(w)

	typed := e.buf.RenderTyped()
	f, width, screen := e.formatter, e.formatWidth, e.screen
	go func() {
		out, ok := f.Format(typed, width)
		ev := &formatDoneEvent{typed: typed, formatted: out, ok: ok}
		ev.SetEventNow()
		screen.PostEvent(ev)
	}()
}

// applyFormat reconciles a formatter result, unless the user has typed since
// the snapshot was taken.
func (e *Editor) applyFormat(ev *formatDoneEvent) {
	if ev.typed != e.buf.RenderTyped() {
		return
	}
	if !ev.ok {
		e.lastFailed = true
		return
	}

	e.lastFailed = false
	a := e.buf.Reconcile(ev.formatted)
	e.buf.Dirty = false
	if !a.Aligned() {
		e.log.Printf("reconcile drift: %d unmatched characters, %d runes of formatter output left over", len(a.Missed), a.Leftover)
	}
}

func (e *Editor) reloadConfig(cfg *config.Config) {
	cfg.ApplyEditorConfig(e.opt.EditorConfig)
	e.cfg = cfg
	e.formatter = e.formatterFor(cfg)
	if e.formatter == nil {
		e.buf.ClearVirtual()
	}
	e.scheduleFormat()
	e.setTemporaryMessage("Settings reloaded")
}

// edited runs an edit and, if the typed text changed, marks the buffer
// modified and schedules a reformat.
func (e *Editor) edited(fn func()) {
	before := e.buf.RenderTyped()
	fn()
	if e.buf.RenderTyped() == before {
		return
	}
	e.modified = true
	e.scheduleFormat()
}

func (e *Editor) save() {
	if e.opt.Path == "" {
		e.setTemporaryError("No file name")
		return
	}
	if err := os.WriteFile(e.opt.Path, []byte(e.buf.RenderTyped()), 0644); err != nil {
		e.log.Printf("save %s: %v", e.opt.Path, err)
		e.setTemporaryError("Error: " + err.Error())
		return
	}
	e.modified = false
	e.cleanBackup()
	e.setTemporaryMessage("Saved " + filepath.Base(e.opt.Path))
}

func (e *Editor) updateStatus() {
	s := e.statusBar
	s.Theme = e.cfg.GetTheme()
	s.Filename = ""
	if e.opt.Path != "" {
		s.Filename = filepath.Base(e.opt.Path)
	}
	s.Language = e.opt.Language
	s.Modified = e.modified

	caret := e.buf.CursorPosition()
	s.Line, s.Col = caret.Start.Line, caret.Start.Col
	s.Split = caret.Split()

	switch {
	case e.formatter == nil:
		s.Format = ui.FormatOff
	case e.lastFailed:
		s.Format = ui.FormatFailed
	case e.buf.Dirty:
		s.Format = ui.FormatPending
	case !e.buf.Alignment().Aligned():
		s.Format = ui.FormatDrift
	default:
		s.Format = ui.FormatClean
	}
}

// setTemporaryMessage sets a message that will auto-clear after 5 seconds
func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = false
	e.statusMessageTime = time.Now()
}

func (e *Editor) setTemporaryError(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = true
	e.statusMessageTime = time.Now()
}

func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > 5*time.Second {
		e.statusBar.Message = ""
		e.statusBar.IsError = false
		e.statusMessageTime = time.Time{}
	}
}
