package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"stepfolio/internal/format"
	"stepfolio/internal/logging"
	"stepfolio/internal/organizer"
	"stepfolio/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Backend    string
	PrettyJSON bool
	Format     string

	// In feeds interactive prompts (rename/edit without --name/--text).
	In io.Reader

	// newID overrides id generation (tests).
	newID organizer.IDFunc
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "stepfolio",
		Short:        "Folders of tasks, tasks of steps (local-first CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  stepfolio

  # Scriptable commands
  stepfolio folders create --name Chores
  stepfolio tasks create fld-abcd1234 --name Dishes
  stepfolio steps add task-efgh5678 Rinse

  # Direct lookup (shortcut for: stepfolio folders show <folder-id>)
  stepfolio fld-abcd1234
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("STEPFOLIO_DIR", ""), "Path to data dir (overrides dataDir in config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("STEPFOLIO_BACKEND", ""), "Storage backend (sqlite|file|memory)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("STEPFOLIO_FORMAT", "json"), "Output format (json|edn|yaml)")

	cmd.AddCommand(newFoldersCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newStepsCmd(app))
	cmd.AddCommand(newRewardsCmd(app))
	cmd.AddCommand(newPresentCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// session is everything a command needs once the data dir is open.
type session struct {
	cfg    *store.Config
	dir    store.Store
	snap   *store.Snapshot
	org    *organizer.Store
	logger *logging.Logger
}

func (s *session) Close() {
	if s == nil {
		return
	}
	if s.snap != nil {
		_ = s.snap.Close()
	}
	_ = s.logger.Close()
}

// resolveConfig applies flag/env overrides on top of config.yaml.
func resolveConfig(app *App) (*store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(app.Dir) != "" {
		cfg.DataDir = app.Dir
	}
	if strings.TrimSpace(app.Backend) != "" {
		b, err := store.ParseBackend(app.Backend)
		if err != nil {
			return nil, err
		}
		cfg.Backend = string(b)
	}
	return cfg, nil
}

func openSession(ctx context.Context, app *App) (*session, error) {
	cfg, err := resolveConfig(app)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.DataDir, cfg.Log)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, dir: store.Store{Dir: cfg.DataDir}, logger: logger}

	snap, err := s.dir.Open(ctx, store.Backend(cfg.Backend), cfg.StorageKey)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open %s store in %s: %w", cfg.Backend, cfg.DataDir, err)
	}
	s.snap = snap

	opts := []organizer.Option{organizer.WithLogger(logger.Logger)}
	if app.newID != nil {
		opts = append(opts, organizer.WithIDFunc(app.newID))
	}
	org, err := organizer.Open(ctx, snap, opts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.org = org
	logger.Debug("opened", "dir", cfg.DataDir, "backend", cfg.Backend, "key", snap.Key())
	return s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeChanged reports a mutation result; no-ops carry "changed": false.
func writeChanged(cmd *cobra.Command, app *App, data any, changed bool) error {
	return writeOut(cmd, app, map[string]any{"data": data, "changed": changed})
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

// withSession opens the store for the duration of fn.
func withSession(cmd *cobra.Command, app *App, fn func(s *session) error) error {
	s, err := openSession(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()
	if err := fn(s); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
