package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"stepfolio/internal/model"
)

func sampleFolders() []model.Folder {
	return []model.Folder{
		{ID: "fld-b", Name: "Chores", Tasks: []model.Task{
			{ID: "task-2", Name: "Dishes", Steps: []string{"Rinse", "Scrub", "Dry"}},
			{ID: "task-1", Name: "Laundry", Steps: []string{}},
		}},
		{ID: "fld-a", Name: "Work", Tasks: []model.Task{}},
		{ID: model.RewardsFolderID, Name: model.RewardsFolderName, IsRewards: true, Tasks: []model.Task{
			{ID: "task-3", Name: "Reward: cake", Steps: []string{}},
		}},
	}
}

func TestSnapshot_RoundTrip_AllBackends(t *testing.T) {
	ctx := context.Background()
	for _, b := range []Backend{BackendMemory, BackendFile, BackendSQLite} {
		b := b
		t.Run(string(b), func(t *testing.T) {
			s := Store{Dir: t.TempDir()}
			snap, err := s.Open(ctx, b, "")
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer snap.Close()
			if snap.Key() != DefaultStorageKey {
				t.Fatalf("expected default key, got %q", snap.Key())
			}

			want := sampleFolders()
			if err := snap.Save(ctx, want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, malformed, err := snap.Load(ctx)
			if err != nil || malformed {
				t.Fatalf("load: malformed=%v err=%v", malformed, err)
			}
			if !reflect.DeepEqual(want, got) {
				t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
			}
		})
	}
}

func TestSnapshot_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	for _, b := range []Backend{BackendFile, BackendSQLite} {
		b := b
		t.Run(string(b), func(t *testing.T) {
			s := Store{Dir: t.TempDir()}
			snap, err := s.Open(ctx, b, "")
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if err := snap.Save(ctx, sampleFolders()); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := snap.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			snap2, err := s.Open(ctx, b, "")
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer snap2.Close()
			got, _, err := snap2.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !reflect.DeepEqual(sampleFolders(), got) {
				t.Fatalf("unexpected folders after reopen: %#v", got)
			}
		})
	}
}

func TestSnapshot_AbsentKeyIsEmpty(t *testing.T) {
	snap := NewSnapshot(NewMemoryKV(), "")
	got, malformed, err := snap.Load(context.Background())
	if err != nil || malformed {
		t.Fatalf("load: malformed=%v err=%v", malformed, err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil collection, got %#v", got)
	}
}

func TestSnapshot_MalformedBlobIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	if err := kv.Put(ctx, DefaultStorageKey, []byte(`{"folders": oops`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, malformed, err := NewSnapshot(kv, "").Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !malformed {
		t.Fatalf("expected malformed=true")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %#v", got)
	}
}

func TestSnapshot_SavePropagatesKVError(t *testing.T) {
	kv := NewMemoryKV()
	kv.FailPuts = errors.New("disk full")
	err := NewSnapshot(kv, "").Save(context.Background(), sampleFolders())
	if err == nil || !errors.Is(err, kv.FailPuts) {
		t.Fatalf("expected wrapped disk full error, got %v", err)
	}
}

func TestEncodeFolders_NilSlicesBecomeEmptyArrays(t *testing.T) {
	b, err := EncodeFolders([]model.Folder{{ID: "fld-a", Name: "A", Tasks: []model.Task{{ID: "task-1", Name: "T"}}}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"id":"fld-a","name":"A","tasks":[{"id":"task-1","name":"T","steps":[]}],"isDefaultRewards":false}]`
	if string(b) != want {
		t.Fatalf("unexpected encoding:\n got: %s\nwant: %s", b, want)
	}
}

func TestDecodeFolders_ReadsOriginalLayout(t *testing.T) {
	raw := `[{"id":"rewards-folder","name":"Rewards","tasks":[],"isDefaultRewards":true},
		{"id":"_k2j3h4g5f","name":"Chores","tasks":[{"id":"_a1b2c3d4e","name":"Dishes","steps":["Rinse"]}],"isDefaultRewards":false}]`
	got, err := DecodeFolders([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || !got[0].IsRewards || got[1].Tasks[0].Steps[0] != "Rinse" {
		t.Fatalf("unexpected decode: %#v", got)
	}
}

func TestDecodeFolders_RejectsTrailingData(t *testing.T) {
	if _, err := DecodeFolders([]byte(`[] []`)); err == nil {
		t.Fatalf("expected error for trailing data")
	}
}

func TestBackupFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "backup.json")
	if err := WriteBackupFile(path, sampleFolders()); err != nil {
		t.Fatalf("WriteBackupFile: %v", err)
	}
	got, err := ReadBackupFile(path)
	if err != nil {
		t.Fatalf("ReadBackupFile: %v", err)
	}
	if !reflect.DeepEqual(sampleFolders(), got) {
		t.Fatalf("unexpected backup roundtrip: %#v", got)
	}
}
