// Package theme loads color themes from a directory of <name>.css files.
//
// A theme file is a list of "property: value;" declarations, optionally
// wrapped in a selector block. Values are tcell color names or #rrggbb:
//
//	:root {
//	    --foreground: #d0d0d0;
//	    --background: black;
//	    --directory: steelblue;
//	    --accent: navy;
//	}
//
// The accent color is the background of the current line and of the unsaved
// marker in the title bar.
package theme

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Extension is the file extension of theme files.
const Extension = ".css"

// Palette holds the styles the UI draws with.
type Palette struct {
	Name      string
	Text      tcell.Style // Editor and terminal text
	Directory tcell.Style // Directory lines in ls output
	Prompt    tcell.Style // Terminal prompt path
	Status    tcell.Style // Title/status bar
	Accent    tcell.Style // Current line and unsaved marker
}

// Default returns the built-in palette used before any theme is applied.
func Default() Palette {
	base := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	return Palette{
		Name:      "default",
		Text:      base,
		Directory: base.Foreground(tcell.ColorSteelBlue).Bold(true),
		Prompt:    base.Foreground(tcell.ColorGreen),
		Status:    base.Reverse(true),
		Accent:    base.Background(tcell.Color18),
	}
}

// Store is a directory of theme files.
type Store struct {
	dir string
}

// NewStore creates a Store for dir. The directory does not need to exist.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the themes directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+Extension)
}

// List returns the available theme names, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("error reading themes directory '%s': %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a theme file exists for name.
func (s *Store) Exists(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return false
	}
	info, err := os.Stat(s.path(name))
	return err == nil && !info.IsDir()
}

// Load parses the theme name on top of the default palette.
func (s *Store) Load(name string) (Palette, error) {
	if !s.Exists(name) {
		return Palette{}, fmt.Errorf("theme '%s' not found", name)
	}
	file, err := os.Open(s.path(name))
	if err != nil {
		return Palette{}, fmt.Errorf("error opening theme '%s': %w", name, err)
	}
	defer file.Close()

	props := map[string]string{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		for _, decl := range strings.Split(scanner.Text(), ";") {
			key, value, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			key = strings.TrimPrefix(strings.TrimSpace(strings.Trim(key, "{} \t")), "--")
			value = strings.TrimSpace(strings.Trim(value, "{} \t"))
			if key != "" && value != "" {
				props[strings.ToLower(key)] = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Palette{}, fmt.Errorf("error reading theme '%s': %w", name, err)
	}

	return build(name, props), nil
}

func build(name string, props map[string]string) Palette {
	p := Default()
	p.Name = name

	color := func(key string) (tcell.Color, bool) {
		v, ok := props[key]
		if !ok {
			return tcell.ColorDefault, false
		}
		c := tcell.GetColor(strings.ToLower(v))
		return c, c != tcell.ColorDefault
	}

	if bg, ok := color("background"); ok {
		p.Text = p.Text.Background(bg)
		p.Directory = p.Directory.Background(bg)
		p.Prompt = p.Prompt.Background(bg)
	}
	if fg, ok := color("foreground"); ok {
		p.Text = p.Text.Foreground(fg)
		p.Accent = p.Accent.Foreground(fg)
	}
	if c, ok := color("directory"); ok {
		p.Directory = p.Directory.Foreground(c)
	}
	if c, ok := color("prompt"); ok {
		p.Prompt = p.Prompt.Foreground(c)
	}
	if c, ok := color("accent"); ok {
		p.Accent = p.Accent.Background(c)
	}
	p.Status = p.Text.Reverse(true)
	if c, ok := color("status"); ok {
		p.Status = p.Text.Background(c).Reverse(false)
	}
	return p
}
