package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"prettyedit/buffer"

	"github.com/gdamore/tcell/v2"
)

const backupInterval = 30 * time.Second

type backupInfo struct {
	OriginalPath string `json:"original_path"`
	Timestamp    string `json:"timestamp"`
}

type backupEvent struct {
	tcell.EventTime
}

func backupDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "prettyedit", "backups")
}

func backupPathForFile(originalPath string) string {
	h := sha256.Sum256([]byte(originalPath))
	return filepath.Join(backupDir(), fmt.Sprintf("%x.bak", h[:8]))
}

func backupMetaPath(backupPath string) string {
	return backupPath + ".json"
}

// startBackupTimer posts a backupEvent every backupInterval until stop is
// closed. The backup itself is written from the event loop.
func (e *Editor) startBackupTimer(stop <-chan struct{}) {
	screen := e.screen
	go func() {
		ticker := time.NewTicker(backupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				ev := &backupEvent{}
				ev.SetEventNow()
				screen.PostEvent(ev)
			}
		}
	}()
}

// saveBackup writes the typed text of a modified file-backed buffer.
func (e *Editor) saveBackup() {
	if !e.modified || e.opt.Path == "" {
		return
	}
	bpath := backupPathForFile(e.opt.Path)
	if err := os.MkdirAll(filepath.Dir(bpath), 0755); err != nil {
		e.log.Printf("backup: %v", err)
		return
	}
	if err := os.WriteFile(bpath, []byte(e.buf.RenderTyped()), 0644); err != nil {
		e.log.Printf("backup %s: %v", e.opt.Path, err)
		return
	}

	meta := backupInfo{
		OriginalPath: e.opt.Path,
		Timestamp:    time.Now().Format(time.RFC3339),
	}
	metaData, _ := json.Marshal(meta)
	os.WriteFile(backupMetaPath(bpath), metaData, 0644)
}

func (e *Editor) cleanBackup() {
	if e.opt.Path == "" {
		return
	}
	bpath := backupPathForFile(e.opt.Path)
	os.Remove(bpath)
	os.Remove(backupMetaPath(bpath))
}

// recoverBackup replaces the buffer with a backup left by a session that did
// not exit cleanly. The file on disk is left alone until the user saves.
func (e *Editor) recoverBackup() bool {
	if e.opt.Path == "" {
		return false
	}
	bpath := backupPathForFile(e.opt.Path)

	metaData, err := os.ReadFile(backupMetaPath(bpath))
	if err != nil {
		return false
	}
	var info backupInfo
	if json.Unmarshal(metaData, &info) != nil || info.OriginalPath != e.opt.Path {
		return false
	}
	data, err := os.ReadFile(bpath)
	if err != nil {
		return false
	}

	e.buf = buffer.New(string(data))
	e.buf.Dirty = true
	e.modified = true
	e.setTemporaryMessage("Recovered unsaved changes from " + info.Timestamp)
	return true
}
