package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"prettyedit/buffer"
)

// FileState is the caret and scroll position remembered for one file.
type FileState struct {
	Path    string `json:"path"`
	Element int    `json:"element"`
	Offset  int    `json:"offset"`
	Length  int    `json:"length"` // element count when saved
	ScrollY int    `json:"scroll_y"`
	ScrollX int    `json:"scroll_x"`
}

func sessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "prettyedit", "sessions")
}

func sessionPath(file string) string {
	hash := sha256.Sum256([]byte(file))
	return filepath.Join(sessionDir(), fmt.Sprintf("%x.json", hash[:8]))
}

func (e *Editor) SaveSession() {
	if e.opt.Path == "" {
		return
	}
	path := sessionPath(e.opt.Path)

	c := e.buf.Cursor()
	state := FileState{
		Path:    e.opt.Path,
		Element: c.Element,
		Offset:  c.Offset,
		Length:  e.buf.Len(),
		ScrollY: e.scrollY,
		ScrollX: e.scrollX,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(path, data, 0644)
}

// RestoreSession puts the caret back where it was when the file was last
// closed. Nothing is restored if the file has changed length since.
func (e *Editor) RestoreSession() bool {
	if e.opt.Path == "" {
		return false
	}

	data, err := os.ReadFile(sessionPath(e.opt.Path))
	if err != nil {
		return false
	}
	var state FileState
	if err := json.Unmarshal(data, &state); err != nil {
		return false
	}
	if state.Path != e.opt.Path || state.Length != e.buf.Len() {
		return false
	}

	e.buf.SetCursor(buffer.Cursor{Element: state.Element, Offset: state.Offset})
	e.scrollY = max(state.ScrollY, 0)
	e.scrollX = max(state.ScrollX, 0)
	return true
}
