package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"prettyedit/buffer"
	"prettyedit/config"
	"prettyedit/editor"
	"prettyedit/format"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	logger, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var path, text string
	if len(os.Args) > 1 {
		path, err = filepath.Abs(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "error: cannot read %s: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		text = string(data)
	}

	var ec *config.EditorConfigSettings
	if path != "" {
		ec = config.FindEditorConfig(path)
	}

	e := editor.New(cfg, buffer.New(text), editor.Options{
		Path:         path,
		Language:     format.Detect(path, text),
		ConfigPath:   config.ConfigPath(),
		EditorConfig: ec,
		Logger:       logger,
	})

	if err := e.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.New(f, "prettyedit: ", log.LstdFlags), func() { f.Close() }, nil
}
