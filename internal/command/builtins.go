package command

import (
	"fmt"

	"github.com/bkmeneguello/tedit/internal/help"
)

// Builtins returns every terminal command.
func Builtins() []Command {
	return []Command{
		newExitCommand(),
		newQuitCommand(),
		newHelpCommand(),
		newClearCommand("cls"),
		newClearCommand("clear"),
		newListCommand(),
		newChangeDirectoryCommand(),
		newOpenCommand(),
		newSaveCommand(),
		newRemoveFileCommand(),
		newMakeDirectoryCommand(),
		newRemoveDirectoryCommand(),
		newExplorerCommand(),
		newListThemesCommand(),
		newThemeCommand(),
		newNewCommand(),
		newPwdCommand(),
		newHistoryCommand(),
		newCopyCommand(),
		newLineNumbersCommand(),
		newHighlightCommand(),
	}
}

// NewBuiltinRegistry builds the registry of every terminal command.
func NewBuiltinRegistry() *Registry {
	return NewRegistry(Builtins()...)
}

type exitCommand struct{ BaseCommand }

func newExitCommand() Command {
	return &exitCommand{BaseCommand{"exit", "exit", "Hide the terminal and focus the editor"}}
}

func (c *exitCommand) Execute(ctx *Context, args []string) {
	ctx.Window.HideTerminal()
}

type quitCommand struct{ BaseCommand }

func newQuitCommand() Command {
	return &quitCommand{BaseCommand{"quit", "quit", "Quit the editor"}}
}

func (c *quitCommand) Execute(ctx *Context, args []string) {
	ctx.Window.Quit()
}

type helpCommand struct{ BaseCommand }

func newHelpCommand() Command {
	return &helpCommand{BaseCommand{"help", "help", "Show the help text"}}
}

func (c *helpCommand) Execute(ctx *Context, args []string) {
	lines, err := help.Lines(ctx.HelpPath)
	if err != nil {
		ctx.Log.Warn("reading help failed", "error", err)
		ctx.Out.WriteLine("Help not available: " + ctx.HelpPath)
		return
	}
	for _, line := range lines {
		ctx.Out.WriteLine(line)
	}
	if ctx.Registry == nil {
		return
	}
	ctx.Out.WriteLine("")
	ctx.Out.WriteLine("Terminal commands:")
	for _, name := range ctx.Registry.Names() {
		cmd, _ := ctx.Registry.Lookup(name)
		ctx.Out.WriteLine(fmt.Sprintf("  %-22s %s", cmd.Usage(), cmd.Description()))
	}
}

type clearCommand struct{ BaseCommand }

func newClearCommand(name string) Command {
	return &clearCommand{BaseCommand{name, name, "Clear the terminal"}}
}

func (c *clearCommand) Execute(ctx *Context, args []string) {
	ctx.Out.Clear()
}

type explorerCommand struct{ BaseCommand }

func newExplorerCommand() Command {
	return &explorerCommand{BaseCommand{"explorer", "explorer", "Open the current directory in the file browser"}}
}

func (c *explorerCommand) Execute(ctx *Context, args []string) {
	if err := ctx.Explorer.Open(ctx.Env.Cwd); err != nil {
		ctx.Log.Warn("opening file browser failed", "dir", ctx.Env.Cwd, "error", err)
		ctx.Out.WriteLine("Could not open file browser: " + ctx.Env.Cwd)
	}
}

type newDocumentCommand struct{ BaseCommand }

func newNewCommand() Command {
	return &newDocumentCommand{BaseCommand{"new", "new", "Start a new empty document"}}
}

func (c *newDocumentCommand) Execute(ctx *Context, args []string) {
	ctx.Buffer.SetText("")
	ctx.Env.Cwf = ""
	ctx.Buffer.MarkClean()
}

type pwdCommand struct{ BaseCommand }

func newPwdCommand() Command {
	return &pwdCommand{BaseCommand{"pwd", "pwd", "Print the current directory"}}
}

func (c *pwdCommand) Execute(ctx *Context, args []string) {
	ctx.Out.WriteLine(ctx.Env.Cwd)
}

type historyCommand struct{ BaseCommand }

func newHistoryCommand() Command {
	return &historyCommand{BaseCommand{"history", "history", "List the commands entered so far"}}
}

func (c *historyCommand) Execute(ctx *Context, args []string) {
	entries := ctx.History.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		ctx.Out.WriteLine(fmt.Sprintf("%4d  %s", len(entries)-i, entries[i]))
	}
}

type copyCommand struct{ BaseCommand }

func newCopyCommand() Command {
	return &copyCommand{BaseCommand{"copy", "copy", "Copy the editor text to the clipboard"}}
}

func (c *copyCommand) Execute(ctx *Context, args []string) {
	if err := ctx.Clipboard.WriteAll(ctx.Buffer.Text()); err != nil {
		ctx.Log.Warn("clipboard write failed", "error", err)
		ctx.Out.WriteLine("Could not copy to clipboard")
		return
	}
	ctx.Out.WriteLine("Copied to clipboard")
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

type lineNumbersCommand struct{ BaseCommand }

func newLineNumbersCommand() Command {
	return &lineNumbersCommand{BaseCommand{"ln", "ln", "Show or hide line numbers"}}
}

func (c *lineNumbersCommand) Execute(ctx *Context, args []string) {
	ctx.Out.WriteLine("Line numbers " + onOff(ctx.Buffer.ToggleLineNumbers()))
}

type highlightCommand struct{ BaseCommand }

func newHighlightCommand() Command {
	return &highlightCommand{BaseCommand{"hl", "hl", "Turn current line highlighting on or off"}}
}

func (c *highlightCommand) Execute(ctx *Context, args []string) {
	ctx.Out.WriteLine("Current line highlight " + onOff(ctx.Buffer.ToggleHighlightCurrentLine()))
}
