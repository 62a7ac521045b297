package cli

import (
	"fmt"

	"stepfolio/internal/tui"

	"github.com/spf13/cobra"
)

func newPresentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "present <task-id>",
		Short: "Present a task's steps one at a time with a timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				t, err := lookupTask(s, args[0])
				if err != nil {
					return err
				}
				if len(t.Steps) == 0 {
					return fmt.Errorf("task %s has no steps to present", t.ID)
				}
				return tui.RunPresentation(tui.PresentOptions{
					Title:  t.Name,
					Steps:  t.Steps,
					Theme:  s.cfg.TUI.Theme,
					Logger: s.logger.Logger,
				})
			})
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	return withSession(cmd, app, func(s *session) error {
		return tui.Run(tui.Options{
			Org:    s.org,
			Data:   s.dir,
			Theme:  s.cfg.TUI.Theme,
			Logger: s.logger.Logger,
		})
	})
}
