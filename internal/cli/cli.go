package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/taskbin/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options wire the command tree to the outside world.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
}

// usageError marks errors caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error {
	return usageError{fmt.Errorf(format, a...)}
}

// Run executes the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(opt.Stdout)
	root.SetErr(opt.Stderr)

	err := root.Execute()
	if err == nil {
		return ExitOK
	}
	ui.Fail(opt.Stderr, err.Error())
	if isUsage(err) {
		return ExitUsage
	}
	return ExitError
}

func isUsage(err error) bool {
	var ue usageError
	if errors.As(err, &ue) {
		return true
	}
	// cobra reports these as plain errors
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

type rootFlags struct {
	configPath string
	dataFile   string
	theme      string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny task list",
		Long: `todo keeps a task list in a single binary file (./todo.bin by default).
Run without a subcommand to open the interactive dashboard.`,
		Example: `  todo add "Buy milk"
  todo add -p high --due 2024-01-01 "Pay rent"
  todo ls
  todo done 2
  todo rm 3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/todo/config.yaml)")
	pf.StringVarP(&flags.dataFile, "file", "f", "", "task data file (overrides config and TODO_FILE)")
	pf.StringVar(&flags.theme, "theme", "", "classic, neon or mono")

	root.AddCommand(
		newListCmd(flags),
		newAddCmd(flags),
		newRemoveCmd(flags),
		newDoneCmd(flags),
		newShowCmd(flags),
		newTUICmd(flags),
		newConfigCmd(flags),
	)
	return root
}
