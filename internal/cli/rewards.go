package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newRewardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rewards",
		Aliases: []string{"reward"},
		Short:   "Rewards folder commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List reward entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				return writeOut(cmd, app, map[string]any{"data": s.org.RewardsFolder().Tasks})
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <text...>",
		Short: `Record a reward ("Reward: <text>") in the Rewards folder`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				id, err := s.org.AddReward(strings.Join(args, " "))
				if err != nil {
					return err
				}
				if id == "" {
					return writeChanged(cmd, app, nil, false)
				}
				t, err := lookupTask(s, id)
				if err != nil {
					return err
				}
				return writeChanged(cmd, app, t, true)
			})
		},
	})
	return cmd
}
