// Package help provides the text printed by the help command.
package help

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed help.txt
var defaultText string

// Separator is the line separator of help files.
const Separator = "\r\n"

// Lines reads the help file at path and splits it on CRLF. When path does not
// exist the built-in help text is used.
func Lines(path string) ([]string, error) {
	text := defaultText
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			text = string(data)
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("error reading help file '%s': %w", path, err)
		}
	}
	return strings.Split(text, Separator), nil
}
