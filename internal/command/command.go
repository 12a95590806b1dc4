// Package command implements the terminal's command registry and dispatcher.
package command

import (
	"fmt"
	"sort"

	"github.com/bkmeneguello/tedit/internal/env"
	"github.com/bkmeneguello/tedit/internal/history"
	"github.com/bkmeneguello/tedit/internal/logging"
	"github.com/bkmeneguello/tedit/internal/theme"
)

// Output is where commands write their results.
type Output interface {
	WriteLine(text string)
	WriteDirectoryLine(name string)
	SetCwd(path string)
	Clear()
}

// Buffer is the editor text buffer as seen by commands.
type Buffer interface {
	Text() string
	SetText(text string)
	MarkClean()
	ToggleLineNumbers() bool
	ToggleHighlightCurrentLine() bool
}

// Window is the application window as seen by commands.
type Window interface {
	HideTerminal()
	Quit()
	ApplyTheme(p theme.Palette)
}

// Launcher opens a directory in the system file browser.
type Launcher interface {
	Open(dir string) error
}

// Clipboard is the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Context carries everything a command may act on. One Context belongs to
// one editor instance.
type Context struct {
	Env        *env.Environment
	Out        Output
	Buffer     Buffer
	Window     Window
	History    *history.History
	Themes     *theme.Store
	ConfigPath string
	HelpPath   string
	Explorer   Launcher
	Clipboard  Clipboard
	Log        logging.Logger
	Registry   *Registry // Set by NewDispatcher
}

// Command is a named terminal command. Execute reports every outcome through
// the context's Output; failures never escape a command.
type Command interface {
	Name() string
	Usage() string
	Description() string
	Execute(ctx *Context, args []string)
}

// BaseCommand holds the metadata shared by every command.
type BaseCommand struct {
	name        string
	usage       string
	description string
}

func (b BaseCommand) Name() string        { return b.name }
func (b BaseCommand) Usage() string       { return b.usage }
func (b BaseCommand) Description() string { return b.description }

// Registry maps command names to commands. It is immutable once built and
// holds no per-instance state, so one Registry can serve many Contexts.
type Registry struct {
	commands map[string]Command
	names    []string
}

// NewRegistry builds a registry. Command names must be unique.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		if _, dup := r.commands[cmd.Name()]; dup {
			panic(fmt.Sprintf("command %q registered twice", cmd.Name()))
		}
		r.commands[cmd.Name()] = cmd
		r.names = append(r.names, cmd.Name())
	}
	sort.Strings(r.names)
	return r
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}
