// Package env holds the mutable state shared by the terminal, the editor and
// the window controls of one editor instance.
package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// WindowState is the state of the application window.
type WindowState int

const (
	Normal WindowState = iota
	Maximized
)

func (w WindowState) String() string {
	if w == Maximized {
		return "maximized"
	}
	return "normal"
}

// Environment is the current directory, current file and window state of an
// editor instance. It is owned by a single event loop and is not safe for
// concurrent use.
type Environment struct {
	Cwd    string      // Absolute, normalized current directory
	Cwf    string      // Current working file, empty when no file is open
	Window WindowState // Window state
}

// New creates an Environment rooted at dir, which must be an existing directory.
func New(dir string) (*Environment, error) {
	cwd, err := Normalize(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(cwd)
	if err != nil {
		return nil, fmt.Errorf("invalid working directory '%s': %w", cwd, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid working directory '%s': not a directory", cwd)
	}
	return &Environment{Cwd: cwd}, nil
}

// Normalize makes path absolute, resolves . and .. segments and uses forward
// slashes as separators.
func Normalize(path string) (string, error) {
	abs, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return "", fmt.Errorf("error resolving path '%s': %w", path, err)
	}
	return filepath.ToSlash(abs), nil
}

// Resolve builds the full path of a fragment relative to the current directory.
// A fragment starting with ~ is expanded against the user's home directory.
func (e *Environment) Resolve(fragment string) string {
	joined := e.Cwd + "/" + fragment
	if strings.HasPrefix(fragment, "~") {
		if expanded, err := homedir.Expand(fragment); err == nil {
			joined = expanded
		}
	}
	full, err := Normalize(joined)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(joined))
	}
	return full
}

// HasFile reports whether a file is open.
func (e *Environment) HasFile() bool {
	return e.Cwf != ""
}

// Maximize records that the window is maximized.
func (e *Environment) Maximize() {
	e.Window = Maximized
}

// Restore records that the window is back to its normal size.
func (e *Environment) Restore() {
	e.Window = Normal
}
