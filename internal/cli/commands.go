package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/taskbin/internal/model"
	"github.com/Makepad-fr/taskbin/internal/store"
	"github.com/Makepad-fr/taskbin/internal/tui"
	"github.com/Makepad-fr/taskbin/internal/ui"
)

// withSession runs fn against a freshly opened session.
func withSession(cmd *cobra.Command, flags *rootFlags, fn func(*session) error) error {
	sess, err := openSession(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer sess.close()
	return fn(sess)
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

// parseIndex turns a 1-based index argument into a store position.
func parseIndex(sub, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usagef("%s: not a number: %s", sub, arg)
	}
	return n - 1, nil
}

// indexError adds the listing hint to out-of-range errors.
func indexError(err error) error {
	if errors.Is(err, store.ErrIndexOutOfRange) {
		return usagef("%v (run `todo ls` to see valid indexes)", err)
	}
	return err
}

func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	return withSession(cmd, flags, func(s *session) error {
		if err := tui.Run(s.store, s.notice); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, flags, func(s *session) error {
				tasks := s.store.Tasks()
				d, p := ui.Stats(tasks)

				lines := []string{
					ui.Header(tasks),
					ui.Current().Muted.Render(ui.ProgressBar(d, d+p, 28)),
					"",
				}
				if group {
					lines = append(lines, ui.GroupLines(tasks)...)
				} else {
					lines = append(lines, ui.ListLines(tasks)...)
				}
				lines = append(lines, "", ui.Current().Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
				fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(lines))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func newAddCmd(flags *rootFlags) *cobra.Command {
	var (
		priority string
		due      string
		done     bool
	)
	cmd := &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a task (description can be multiple words)",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: todo add <description...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParsePriority(priority)
			if err != nil {
				return usageError{err}
			}
			desc := strings.TrimSpace(strings.Join(args, " "))
			if desc == "" {
				return usagef("add: empty description")
			}
			return withSession(cmd, flags, func(s *session) error {
				if err := s.store.Append(desc, p, strings.TrimSpace(due), done); err != nil {
					if errors.Is(err, store.ErrCapacityExceeded) {
						return err
					}
					return fmt.Errorf("save: %w", err)
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d", s.store.Len()))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "low", "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "due date, free text")
	cmd.Flags().BoolVar(&done, "done", false, "mark the task completed")
	return cmd
}

func newRemoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"delete"},
		Short:   "Remove the task at a 1-based index",
		Args:    exactArgs(1, "todo rm <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex("rm", args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, flags, func(s *session) error {
				if err := s.store.Delete(idx); err != nil {
					return indexError(err)
				}
				ui.OK(cmd.OutOrStdout(), "removed")
				return nil
			})
		},
	}
}

func newDoneCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for the task at a 1-based index",
		Args:  exactArgs(1, "todo done <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex("done", args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, flags, func(s *session) error {
				if err := s.store.Toggle(idx); err != nil {
					return indexError(err)
				}
				ui.OK(cmd.OutOrStdout(), "toggled")
				return nil
			})
		},
	}
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Show one task in detail",
		Args:  exactArgs(1, "todo show <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex("show", args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, flags, func(s *session) error {
				t, err := s.store.At(idx)
				if err != nil {
					return indexError(err)
				}
				if style == "" {
					style = s.cfg.MarkdownStyle
				}
				out, err := ui.RenderTask(idx+1, t, style, 80)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "glamour style (auto, dark, light, notty)")
	return cmd
}
