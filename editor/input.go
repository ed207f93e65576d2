package editor

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

func (e *Editor) HandleKey(ev *tcell.EventKey) {
	// Reset force-quit state on any key except Ctrl+Q
	if ev.Key() != tcell.KeyCtrlQ {
		e.quitPending = false
	}

	buf := e.buf
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		e.handleQuit()
	case tcell.KeyCtrlS:
		e.save()
	case tcell.KeyCtrlF:
		e.startFormat()
	case tcell.KeyCtrlC:
		e.clip.Write(buf.RenderTyped())
		e.setTemporaryMessage("Copied buffer")
	case tcell.KeyCtrlV:
		if text := e.clip.Read(); text != "" {
			e.edited(func() { buf.InsertString(text) })
		}
	case tcell.KeyLeft:
		buf.MoveLeft()
	case tcell.KeyRight:
		buf.MoveRight()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.edited(buf.Backspace)
	case tcell.KeyDelete:
		e.edited(buf.Delete)
	case tcell.KeyEnter:
		e.edited(func() { buf.Insert('\n') })
	case tcell.KeyTab:
		indent := strings.Repeat(" ", max(e.cfg.TabSize, 1))
		e.edited(func() { buf.InsertString(indent) })
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return
		}
		r := ev.Rune()
		e.edited(func() { buf.Insert(r) })
	}
}

func (e *Editor) handleQuit() {
	if e.modified && !e.quitPending {
		e.quitPending = true
		e.setTemporaryError("Unsaved changes. Press Ctrl+Q again to quit")
		return
	}
	e.quit = true
}
