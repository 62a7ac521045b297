package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newStepsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "steps",
		Aliases: []string{"step"},
		Short:   "Step commands (steps are addressed by index, starting at 0)",
	}
	cmd.AddCommand(newStepsListCmd(app))
	cmd.AddCommand(newStepsAddCmd(app))
	cmd.AddCommand(newStepsEditCmd(app))
	cmd.AddCommand(newStepsRmCmd(app))
	cmd.AddCommand(newStepsSwapCmd(app))
	return cmd
}

// stepsResult writes the task's steps after a mutation.
func stepsResult(cmd *cobra.Command, app *App, s *session, taskID string, changed bool) error {
	steps, _ := s.org.ListSteps(taskID)
	return writeChanged(cmd, app, map[string]any{"taskId": taskID, "steps": steps}, changed)
}

func newStepsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <task-id>",
		Short: "List the steps of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				steps, ok := s.org.ListSteps(args[0])
				if !ok {
					return errNotFound("task", args[0])
				}
				return writeOut(cmd, app, map[string]any{"data": steps})
			})
		},
	}
}

func newStepsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task-id> <text...>",
		Short: "Append a step",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				taskID := args[0]
				if _, ok := s.org.Task(taskID); !ok {
					return errNotFound("task", taskID)
				}
				changed, err := s.org.AddStep(taskID, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				return stepsResult(cmd, app, s, taskID, changed)
			})
		},
	}
}

func newStepsEditCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "edit <task-id> <index>",
		Short: "Replace a step's text (prompts when --text is omitted)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(s *session) error {
				taskID := args[0]
				if _, ok := s.org.Task(taskID); !ok {
					return errNotFound("task", taskID)
				}
				var changed bool
				if cmd.Flags().Changed("text") {
					changed, err = s.org.EditStep(taskID, idx, text)
				} else {
					changed, err = s.org.EditStepWith(newLinePrompter(cmd, app), taskID, idx)
				}
				if err != nil {
					return err
				}
				return stepsResult(cmd, app, s, taskID, changed)
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New step text")
	return cmd
}

func newStepsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id> <index>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a step; later steps move up",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(s *session) error {
				taskID := args[0]
				if _, ok := s.org.Task(taskID); !ok {
					return errNotFound("task", taskID)
				}
				changed, err := s.org.RemoveStep(taskID, idx)
				if err != nil {
					return err
				}
				return stepsResult(cmd, app, s, taskID, changed)
			})
		},
	}
}

func newStepsSwapCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <task-id> <index> <index>",
		Short: "Swap two steps",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			j, err := parseIndex(args[2])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(s *session) error {
				taskID := args[0]
				if _, ok := s.org.Task(taskID); !ok {
					return errNotFound("task", taskID)
				}
				changed, err := s.org.SwapSteps(taskID, i, j)
				if err != nil {
					return err
				}
				return stepsResult(cmd, app, s, taskID, changed)
			})
		},
	}
}
