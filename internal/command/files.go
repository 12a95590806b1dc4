package command

import (
	"github.com/bkmeneguello/tedit/internal/fsops"
)

// arg returns args[i], or "" when absent.
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// requireArg reports a missing first argument. It returns false when the
// command should stop.
func requireArg(ctx *Context, cmd Command, args []string) (string, bool) {
	a := arg(args, 0)
	if a == "" {
		ctx.Out.WriteLine("Missing argument: " + cmd.Usage())
		return "", false
	}
	return a, true
}

// report writes a filesystem result and logs failures.
func report(ctx *Context, res fsops.Result) {
	if !res.OK() {
		ctx.Log.Warn("filesystem operation failed", "path", res.Path, "error", res.Err)
	}
	ctx.Out.WriteLine(res.Line())
}

type listCommand struct{ BaseCommand }

func newListCommand() Command {
	return &listCommand{BaseCommand{"ls", "ls", "List the current directory"}}
}

func (c *listCommand) Execute(ctx *Context, args []string) {
	entries, res := fsops.ScanDirectory(ctx.Env)
	if !res.OK() {
		report(ctx, res)
		return
	}
	for _, e := range entries {
		if e.IsDir {
			ctx.Out.WriteDirectoryLine(e.Name)
		} else {
			ctx.Out.WriteLine(e.Name)
		}
	}
}

type changeDirectoryCommand struct{ BaseCommand }

func newChangeDirectoryCommand() Command {
	return &changeDirectoryCommand{BaseCommand{"cd", "cd <dir>", "Change the current directory"}}
}

func (c *changeDirectoryCommand) Execute(ctx *Context, args []string) {
	dir, ok := requireArg(ctx, c, args)
	if !ok {
		return
	}
	res := fsops.ChangeDirectory(ctx.Env, dir)
	if res.OK() {
		ctx.Out.SetCwd(ctx.Env.Cwd)
	}
	report(ctx, res)
}

type openCommand struct{ BaseCommand }

func newOpenCommand() Command {
	return &openCommand{BaseCommand{"open", "open <file>", "Open a file in the editor"}}
}

func (c *openCommand) Execute(ctx *Context, args []string) {
	file, ok := requireArg(ctx, c, args)
	if !ok {
		return
	}
	text, res := fsops.OpenFile(ctx.Env, file)
	if res.OK() {
		ctx.Buffer.SetText(text)
		ctx.Buffer.MarkClean()
	}
	report(ctx, res)
}

type saveCommand struct{ BaseCommand }

func newSaveCommand() Command {
	return &saveCommand{BaseCommand{"save", "save <file>", "Save the editor text to a file"}}
}

func (c *saveCommand) Execute(ctx *Context, args []string) {
	file, ok := requireArg(ctx, c, args)
	if !ok {
		return
	}
	res := fsops.SaveFile(ctx.Env, file, ctx.Buffer.Text())
	if res.OK() {
		ctx.Buffer.MarkClean()
	}
	report(ctx, res)
}

type removeFileCommand struct{ BaseCommand }

func newRemoveFileCommand() Command {
	return &removeFileCommand{BaseCommand{"rm", "rm <file>", "Remove a file"}}
}

func (c *removeFileCommand) Execute(ctx *Context, args []string) {
	if file, ok := requireArg(ctx, c, args); ok {
		report(ctx, fsops.RemoveFile(ctx.Env, file))
	}
}

type makeDirectoryCommand struct{ BaseCommand }

func newMakeDirectoryCommand() Command {
	return &makeDirectoryCommand{BaseCommand{"mkdir", "mkdir <dir>", "Create a directory"}}
}

func (c *makeDirectoryCommand) Execute(ctx *Context, args []string) {
	if dir, ok := requireArg(ctx, c, args); ok {
		report(ctx, fsops.MakeDirectory(ctx.Env, dir))
	}
}

type removeDirectoryCommand struct{ BaseCommand }

func newRemoveDirectoryCommand() Command {
	return &removeDirectoryCommand{BaseCommand{"rmdir", "rmdir <dir>", "Remove an empty directory"}}
}

func (c *removeDirectoryCommand) Execute(ctx *Context, args []string) {
	if dir, ok := requireArg(ctx, c, args); ok {
		report(ctx, fsops.RemoveDirectory(ctx.Env, dir))
	}
}
