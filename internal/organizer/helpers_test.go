package organizer

import (
	"context"
	"fmt"
	"testing"

	"stepfolio/internal/model"
	"stepfolio/internal/store"

	"github.com/stretchr/testify/require"
)

// seqIDs hands out prefix-1, prefix-2, ... skipping ids that exist.
func seqIDs() IDFunc {
	n := 0
	return func(prefix string, exists func(string) bool) (string, error) {
		for {
			n++
			id := fmt.Sprintf("%s-%d", prefix, n)
			if exists == nil || !exists(id) {
				return id, nil
			}
		}
	}
}

func newTestStore(t *testing.T) (*Store, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	s, err := Open(context.Background(), store.NewSnapshot(kv, ""), WithIDFunc(seqIDs()))
	require.NoError(t, err)
	return s, kv
}

// persisted decodes what is currently in kv.
func persisted(t *testing.T, kv *store.MemoryKV) []model.Folder {
	t.Helper()
	fs, malformed, err := store.NewSnapshot(kv, "").Load(context.Background())
	require.NoError(t, err)
	require.False(t, malformed)
	return fs
}

func folderIDs(fs []model.Folder) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.ID)
	}
	return out
}

func taskIDs(ts []model.Task) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func mustCreateFolder(t *testing.T, s *Store, name string) string {
	t.Helper()
	id, err := s.CreateFolder(name)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func mustCreateTask(t *testing.T, s *Store, folderID, name string) string {
	t.Helper()
	id, err := s.CreateTask(folderID, name)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}
