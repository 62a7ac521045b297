package cli

import (
	"stepfolio/internal/model"

	"github.com/spf13/cobra"
)

// taskOut is a task plus the folder that owns it.
type taskOut struct {
	model.Task
	FolderID string `json:"folderId"`
}

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksRenameCmd(app))
	cmd.AddCommand(newTasksRmCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksSwapCmd(app))
	return cmd
}

func lookupTask(s *session, id string) (taskOut, error) {
	f, ok := s.org.FolderOfTask(id)
	if !ok {
		return taskOut{}, errNotFound("task", id)
	}
	t, _ := s.org.Task(id)
	return taskOut{Task: t, FolderID: f.ID}, nil
}

func newTasksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <folder-id>",
		Short: "List the tasks of a folder in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				ts, ok := s.org.ListTasks(args[0])
				if !ok {
					return errNotFound("folder", args[0])
				}
				return writeOut(cmd, app, map[string]any{"data": ts})
			})
		},
	}
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task with its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				t, err := lookupTask(s, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": t})
			})
		},
	}
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create <folder-id>",
		Short: "Append a task to a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				if _, ok := s.org.Folder(args[0]); !ok {
					return errNotFound("folder", args[0])
				}
				id, err := s.org.CreateTask(args[0], name)
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
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTasksRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <task-id>",
		Short: "Rename a task (prompts when --name is omitted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				id := args[0]
				if _, err := lookupTask(s, id); err != nil {
					return err
				}
				var (
					changed bool
					err     error
				)
				if cmd.Flags().Changed("name") {
					changed, err = s.org.RenameTask(id, name)
				} else {
					changed, err = s.org.RenameTaskWith(newLinePrompter(cmd, app), id)
				}
				if err != nil {
					return err
				}
				t, err := lookupTask(s, id)
				if err != nil {
					return err
				}
				return writeChanged(cmd, app, t, changed)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New task name")
	return cmd
}

func newTasksRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <folder-id> <task-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task from a folder",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				folderID, taskID := args[0], args[1]
				if _, ok := s.org.Folder(folderID); !ok {
					return errNotFound("folder", folderID)
				}
				changed, err := s.org.RemoveTask(folderID, taskID)
				if err != nil {
					return err
				}
				return writeChanged(cmd, app, map[string]any{"id": taskID, "folderId": folderID}, changed)
			})
		},
	}
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "move <task-id> --to <folder-id>",
		Short: "Move a task to the end of another folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				cur, err := lookupTask(s, args[0])
				if err != nil {
					return err
				}
				if _, ok := s.org.Folder(to); !ok {
					return errNotFound("folder", to)
				}
				changed, err := s.org.MoveTask(cur.ID, cur.FolderID, to)
				if err != nil {
					return err
				}
				t, err := lookupTask(s, cur.ID)
				if err != nil {
					return err
				}
				return writeChanged(cmd, app, t, changed)
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Destination folder id")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newTasksSwapCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <folder-id> <task-id> <task-id>",
		Short: "Swap the positions of two tasks in a folder",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				if _, ok := s.org.Folder(args[0]); !ok {
					return errNotFound("folder", args[0])
				}
				changed, err := s.org.SwapTasks(args[0], args[1], args[2])
				if err != nil {
					return err
				}
				ts, _ := s.org.ListTasks(args[0])
				return writeChanged(cmd, app, ts, changed)
			})
		},
	}
}
