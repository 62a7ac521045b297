package store

import (
	"context"
	"fmt"
	"strings"
)

// KV is a byte-oriented key-value store. Put must be durable when it returns.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(BackendSQLite):
		return BackendSQLite, nil
	case string(BackendFile):
		return BackendFile, nil
	case string(BackendMemory):
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown backend: %s (expected sqlite|file|memory)", s)
	}
}

func validKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("kv: empty key")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("kv: invalid key %q", key)
	}
	return nil
}
