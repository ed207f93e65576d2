package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EditorConfigSettings are the .editorconfig properties that affect how a
// buffer is formatted. Zero means unset.
type EditorConfigSettings struct {
	IndentSize    int
	TabWidth      int
	MaxLineLength int
}

// FindEditorConfig walks from the file's directory up to the filesystem root
// (or the first file with root = true) and merges the sections matching the
// file, closer files winning. It returns nil when nothing applies.
func FindEditorConfig(filePath string) *EditorConfigSettings {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil
	}
	name := filepath.Base(absPath)

	var chain []map[string]string
	for dir := filepath.Dir(absPath); ; {
		props, root := readEditorConfig(filepath.Join(dir, ".editorconfig"), name)
		if props != nil {
			chain = append(chain, props)
		}
		parent := filepath.Dir(dir)
		if root || parent == dir {
			break
		}
		dir = parent
	}

	merged := make(map[string]string)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i] {
			merged[k] = v
		}
	}
	return settingsFrom(merged)
}

// readEditorConfig returns the properties of the sections in path that match
// name, and whether the file declares itself root.
func readEditorConfig(path, name string) (map[string]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	props := make(map[string]string)
	root := false
	preamble := true
	matching := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			preamble = false
			matching = globMatch(line[1:len(line)-1], name)
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))

		switch {
		case preamble && key == "root":
			root = value == "true"
		case matching:
			props[key] = value
		}
	}

	if len(props) == 0 {
		return nil, root
	}
	return props, root
}

// globMatch matches an editorconfig section glob against a file name,
// expanding {a,b} alternatives.
func globMatch(pattern, name string) bool {
	for _, p := range expandBraces(pattern) {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	depth, close := 0, -1
	for i := open; i < len(pattern) && close < 0; i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				close = i
			}
		}
	}
	if close < 0 {
		return []string{pattern}
	}

	var out []string
	for _, alt := range splitAlternatives(pattern[open+1 : close]) {
		out = append(out, expandBraces(pattern[:open]+alt+pattern[close+1:])...)
	}
	return out
}

func splitAlternatives(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func settingsFrom(m map[string]string) *EditorConfigSettings {
	atoi := func(key string) int {
		n, err := strconv.Atoi(m[key])
		if err != nil || n <= 0 {
			return 0
		}
		return n
	}

	s := &EditorConfigSettings{
		IndentSize:    atoi("indent_size"),
		TabWidth:      atoi("tab_width"),
		MaxLineLength: atoi("max_line_length"),
	}
	if *s == (EditorConfigSettings{}) {
		return nil
	}
	return s
}
