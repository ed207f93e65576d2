package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	TabSize         int                 `json:"tab_size"`
	MaxWidth        int                 `json:"max_width"` // 0 means the screen width
	FormatDelayMS   int                 `json:"format_delay_ms"`
	FormatTimeoutMS int                 `json:"format_timeout_ms"`
	Formatters      map[string][]string `json:"formatters"` // language -> command line
	ShowVirtual     bool                `json:"show_virtual"`
	Theme           string              `json:"theme"`
	LogFile         string              `json:"log_file"`
}

// FormatDelay is how long the editor waits after the last edit before
// formatting.
func (c *Config) FormatDelay() time.Duration {
	return time.Duration(c.FormatDelayMS) * time.Millisecond
}

func (c *Config) FormatTimeout() time.Duration {
	return time.Duration(c.FormatTimeoutMS) * time.Millisecond
}

// Width returns the formatting width for a screen of the given width.
func (c *Config) Width(screenWidth int) int {
	if c.MaxWidth > 0 && (screenWidth <= 0 || c.MaxWidth < screenWidth) {
		return c.MaxWidth
	}
	if screenWidth <= 0 {
		return 80
	}
	return screenWidth
}

// ApplyEditorConfig overlays .editorconfig settings onto c.
func (c *Config) ApplyEditorConfig(ec *EditorConfigSettings) {
	if ec == nil {
		return
	}
	switch {
	case ec.IndentSize > 0:
		c.TabSize = ec.IndentSize
	case ec.TabWidth > 0:
		c.TabSize = ec.TabWidth
	}
	if ec.MaxLineLength > 0 {
		c.MaxWidth = ec.MaxLineLength
	}
}

type ColorScheme struct {
	Name        string
	Background  tcell.Color
	Foreground  tcell.Color
	Virtual     tcell.Color // formatter whitespace when show_virtual is on
	Caret       tcell.Color // the far end of a split caret
	StatusBarBg tcell.Color
	StatusBarFg tcell.Color
	Warning     tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:        "Dark",
		Background:  tcell.ColorBlack,
		Foreground:  tcell.ColorWhite,
		Virtual:     tcell.ColorDimGray,
		Caret:       tcell.ColorDarkBlue,
		StatusBarBg: tcell.ColorDarkBlue,
		StatusBarFg: tcell.ColorWhite,
		Warning:     tcell.ColorYellow,
	},
	"light": {
		Name:        "Light",
		Background:  tcell.ColorWhite,
		Foreground:  tcell.ColorBlack,
		Virtual:     tcell.ColorLightGray,
		Caret:       tcell.ColorLightBlue,
		StatusBarBg: tcell.ColorLightBlue,
		StatusBarFg: tcell.ColorBlack,
		Warning:     tcell.ColorRed,
	},
	"monokai": {
		Name:        "Monokai",
		Background:  tcell.NewRGBColor(39, 40, 34),
		Foreground:  tcell.NewRGBColor(248, 248, 242),
		Virtual:     tcell.NewRGBColor(70, 71, 60),
		Caret:       tcell.NewRGBColor(73, 72, 62),
		StatusBarBg: tcell.NewRGBColor(73, 72, 62),
		StatusBarFg: tcell.NewRGBColor(248, 248, 242),
		Warning:     tcell.NewRGBColor(249, 38, 114),
	},
	"nord": {
		Name:        "Nord",
		Background:  tcell.NewRGBColor(46, 52, 64),
		Foreground:  tcell.NewRGBColor(236, 239, 244),
		Virtual:     tcell.NewRGBColor(59, 66, 82),
		Caret:       tcell.NewRGBColor(67, 76, 94),
		StatusBarBg: tcell.NewRGBColor(67, 76, 94),
		StatusBarFg: tcell.NewRGBColor(236, 239, 244),
		Warning:     tcell.NewRGBColor(235, 203, 139),
	},
	"gruvbox": {
		Name:        "Gruvbox Dark",
		Background:  tcell.NewRGBColor(40, 40, 40),
		Foreground:  tcell.NewRGBColor(235, 219, 178),
		Virtual:     tcell.NewRGBColor(80, 73, 69),
		Caret:       tcell.NewRGBColor(60, 56, 54),
		StatusBarBg: tcell.NewRGBColor(60, 56, 54),
		StatusBarFg: tcell.NewRGBColor(235, 219, 178),
		Warning:     tcell.NewRGBColor(254, 128, 25),
	},
}

func Default() *Config {
	return &Config{
		TabSize:         4,
		FormatDelayMS:   300,
		FormatTimeoutMS: 2000,
		Formatters: map[string][]string{
			"Rust": {"rustfmt", "--edition", "2018", "--emit", "stdout", "--config", "max_width={width}"},
		},
		ShowVirtual: true,
		Theme:       "monokai",
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "prettyedit", "settings.json")
}

func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads settings from path on top of the defaults. A missing file
// yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

func (c *Config) SaveFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
