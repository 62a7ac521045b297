package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	sqliteFileName = "stepfolio.sqlite"
	kvDirName      = "kv"

	// DefaultStorageKey is the key the folder collection blob lives under.
	// The version suffix is the only schema versioning there is.
	DefaultStorageKey = "foldersDataV4"
)

// Store resolves on-disk locations inside a data directory.
type Store struct {
	Dir string
}

// DefaultDir returns ~/.stepfolio/data (or $STEPFOLIO_CONFIG_DIR/data).
func DefaultDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return fmt.Errorf("store: empty data dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) kvDir() string {
	return filepath.Join(s.Dir, kvDirName)
}

// OpenKV opens the key-value backend selected by b inside the data dir.
func (s Store) OpenKV(ctx context.Context, b Backend) (KV, error) {
	switch b {
	case BackendMemory:
		return NewMemoryKV(), nil
	case BackendFile:
		if err := s.Ensure(); err != nil {
			return nil, err
		}
		return OpenFileKV(s.kvDir())
	case BackendSQLite, "":
		if err := s.Ensure(); err != nil {
			return nil, err
		}
		return OpenSQLiteKV(ctx, s.sqlitePath())
	default:
		return nil, fmt.Errorf("store: unknown backend %q", b)
	}
}

// Open opens the backend and wraps it as a Snapshot under key.
func (s Store) Open(ctx context.Context, b Backend, key string) (*Snapshot, error) {
	kv, err := s.OpenKV(ctx, b)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(kv, key), nil
}
