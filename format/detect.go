package format

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Detect returns the chroma language name for a file, falling back to
// analysing its content. It returns "" when neither gives an answer.
func Detect(filename, content string) string {
	var lexer chroma.Lexer
	if filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil && content != "" {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		return ""
	}
	config := lexer.Config()
	if config == nil {
		return ""
	}
	return config.Name
}
