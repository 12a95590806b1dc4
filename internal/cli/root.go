// Package cli is the tedit command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bkmeneguello/tedit/internal/app"
	"github.com/bkmeneguello/tedit/internal/config"
	"github.com/bkmeneguello/tedit/internal/logging"
	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	logFileName     = "tedit.log"
	historyFileName = "history"
)

// Flags holds the command line flags.
type Flags struct {
	WorkingDir  string
	DataDir     string
	HistoryFile string
	Verbose     bool
	Quiet       bool
}

// NewRootCommand builds the root command. run starts the UI; Execute passes
// one that owns a real terminal screen.
func NewRootCommand(run func(app.Options) error) *cobra.Command {
	var flags Flags
	cmd := &cobra.Command{
		Use:           "tedit [file]",
		Short:         "Text editor with an embedded terminal",
		Long:          `tedit is a plain-text editor with a built-in command terminal for browsing and managing files.`,
		Version:       "dev",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, closer, err := prepare(flags, args)
			if err != nil {
				return err
			}
			defer closer.Close()
			return run(opts)
		},
	}

	cmd.Flags().StringVar(&flags.WorkingDir, "cwd", "", "starting directory (default: current directory)")
	cmd.Flags().StringVar(&flags.DataDir, "data-dir", "", "directory holding config.json, themes/ and help.txt (default: ~/.tedit)")
	cmd.Flags().StringVar(&flags.HistoryFile, "history-file", "", "command history file (default: <data-dir>/history)")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "verbose logging (debug level)")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "quiet logging (errors only)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	return cmd
}

// prepare resolves flags into app options and sets up logging. The returned
// closer releases the log file.
func prepare(flags Flags, args []string) (app.Options, io.Closer, error) {
	paths, err := config.NewPaths(flags.DataDir)
	if err != nil {
		return app.Options{}, nil, err
	}

	// Variables already set in the environment win over the .env file.
	if err := godotenv.Load(paths.Env); err != nil && !os.IsNotExist(err) {
		return app.Options{}, nil, fmt.Errorf("error loading %s: %w", paths.Env, err)
	}

	var override *slog.Level
	switch {
	case flags.Verbose:
		level := slog.LevelDebug
		override = &level
	case flags.Quiet:
		level := slog.LevelError
		override = &level
	}
	logger, closer := logging.NewFileLoggerFromEnv(logFileName, override)

	cwd := flags.WorkingDir
	if cwd == "" {
		if cwd, err = os.Getwd(); err != nil {
			closer.Close()
			return app.Options{}, nil, fmt.Errorf("error getting working directory: %w", err)
		}
	}

	historyFile := flags.HistoryFile
	if historyFile == "" {
		historyFile = filepath.Join(paths.Dir, historyFileName)
	}

	opts := app.Options{
		Cwd:         cwd,
		HistoryFile: historyFile,
		Paths:       paths,
		Log:         logger,
	}
	if len(args) > 0 {
		opts.File = args[0]
	}
	logger.Info("starting", "cwd", cwd, "dataDir", paths.Dir, "file", opts.File)
	return opts, closer, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runScreen runs the editor on the controlling terminal.
func runScreen(opts app.Options) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return fmt.Errorf("stdin and stdout must be a terminal")
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("error creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("error initializing screen: %w", err)
	}
	defer screen.Fini() // Ensure cleanup is deferred

	a, err := app.New(screen, opts)
	if err != nil {
		return err
	}
	return a.Run()
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand(runScreen).Execute()
}
