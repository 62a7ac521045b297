package cli

import (
	"stepfolio/internal/model"

	"github.com/spf13/cobra"
)

func newFoldersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folders",
		Aliases: []string{"folder"},
		Short:   "Folder commands",
	}
	cmd.AddCommand(newFoldersListCmd(app))
	cmd.AddCommand(newFoldersShowCmd(app))
	cmd.AddCommand(newFoldersCreateCmd(app))
	cmd.AddCommand(newFoldersRenameCmd(app))
	cmd.AddCommand(newFoldersRmCmd(app))
	cmd.AddCommand(newFoldersSwapCmd(app))
	return cmd
}

func newFoldersListCmd(app *App) *cobra.Command {
	var brief bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List folders in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				fs := s.org.ListFolders()
				if brief {
					return writeOut(cmd, app, map[string]any{"data": folderSummaries(fs)})
				}
				return writeOut(cmd, app, map[string]any{"data": fs})
			})
		},
	}

	cmd.Flags().BoolVar(&brief, "brief", false, "Only ids, names and task counts")
	return cmd
}

func newFoldersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <folder-id>",
		Short: "Show a folder with its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				f, ok := s.org.Folder(args[0])
				if !ok {
					return errNotFound("folder", args[0])
				}
				return writeOut(cmd, app, map[string]any{"data": f})
			})
		},
	}
}

func newFoldersCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				id, err := s.org.CreateFolder(name)
				if err != nil {
					return err
				}
				if id == "" {
					return writeChanged(cmd, app, nil, false)
				}
				f, _ := s.org.Folder(id)
				return writeChanged(cmd, app, f, true)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Folder name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newFoldersRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <folder-id>",
		Short: "Rename a folder (prompts when --name is omitted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				id := args[0]
				if _, ok := s.org.Folder(id); !ok {
					return errNotFound("folder", id)
				}
				var (
					changed bool
					err     error
				)
				if cmd.Flags().Changed("name") {
					changed, err = s.org.RenameFolder(id, name)
				} else {
					changed, err = s.org.RenameFolderWith(newLinePrompter(cmd, app), id)
				}
				if err != nil {
					return err
				}
				f, _ := s.org.Folder(id)
				return writeChanged(cmd, app, f, changed)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New folder name")
	return cmd
}

func newFoldersRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <folder-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a folder and its tasks (the Rewards folder is kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				id := args[0]
				if _, ok := s.org.Folder(id); !ok {
					return errNotFound("folder", id)
				}
				changed, err := s.org.RemoveFolder(id)
				if err != nil {
					return err
				}
				return writeChanged(cmd, app, map[string]any{"id": id}, changed)
			})
		},
	}
}

func newFoldersSwapCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <folder-id> <folder-id>",
		Short: "Swap the positions of two folders",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				for _, id := range args {
					if _, ok := s.org.Folder(id); !ok {
						return errNotFound("folder", id)
					}
				}
				changed, err := s.org.SwapFolders(args[0], args[1])
				if err != nil {
					return err
				}
				return writeChanged(cmd, app, folderSummaries(s.org.ListFolders()), changed)
			})
		},
	}
}

type folderSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Tasks     int    `json:"tasks"`
	IsRewards bool   `json:"isDefaultRewards,omitempty"`
}

func folderSummaries(fs []model.Folder) []folderSummary {
	out := make([]folderSummary, 0, len(fs))
	for _, f := range fs {
		out = append(out, folderSummary{ID: f.ID, Name: f.Name, Tasks: len(f.Tasks), IsRewards: f.IsRewards})
	}
	return out
}
