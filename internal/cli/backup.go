package cli

import (
	"strings"

	"stepfolio/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the folder collection as JSON (stdout, or --out file)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(s *session) error {
				fs := s.org.ListFolders()
				if strings.TrimSpace(out) == "" {
					// The stored blob, byte for byte.
					b, err := s.snap.Raw(cmd.Context())
					if err != nil {
						return err
					}
					if b == nil {
						if b, err = store.EncodeFolders(fs); err != nil {
							return err
						}
					}
					_, err = cmd.OutOrStdout().Write(append(b, '\n'))
					return err
				}
				if err := store.WriteBackupFile(out, fs); err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": out, "folders": len(fs)}})
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the folder collection with an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := store.ReadBackupFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSession(cmd, app, func(s *session) error {
				if err := s.org.Replace(fs); err != nil {
					return err
				}
				return writeChanged(cmd, app, folderSummaries(s.org.ListFolders()), true)
			})
		},
	}
}
