package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"stepfolio/internal/model"
)

// Snapshot persists the whole folder collection as one JSON blob under a fixed key.
// There are no partial writes: every Save replaces the blob.
type Snapshot struct {
	kv  KV
	key string
}

func NewSnapshot(kv KV, key string) *Snapshot {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultStorageKey
	}
	return &Snapshot{kv: kv, key: key}
}

func (s *Snapshot) Key() string { return s.key }

// Load reads the collection. An absent key yields an empty collection.
// A blob that fails to parse also yields an empty collection; malformed reports it
// so callers can log it, but it is not an error.
func (s *Snapshot) Load(ctx context.Context) (folders []model.Folder, malformed bool, err error) {
	b, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", s.key, err)
	}
	if !ok || isNullOrEmpty(b) {
		return []model.Folder{}, false, nil
	}
	folders, err = DecodeFolders(b)
	if err != nil {
		return []model.Folder{}, true, nil
	}
	return folders, false, nil
}

func (s *Snapshot) Save(ctx context.Context, folders []model.Folder) error {
	b, err := EncodeFolders(folders)
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, s.key, b); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// Raw returns the stored blob as-is (nil when absent).
func (s *Snapshot) Raw(ctx context.Context) ([]byte, error) {
	b, ok, err := s.kv.Get(ctx, s.key)
	if err != nil || !ok {
		return nil, err
	}
	return b, nil
}

func (s *Snapshot) Close() error { return s.kv.Close() }

// EncodeFolders serializes the collection. Nil slices are written as [] so the
// blob always round-trips to the same shape.
func EncodeFolders(folders []model.Folder) ([]byte, error) {
	return json.Marshal(model.CloneFolders(folders))
}

func DecodeFolders(b []byte) ([]model.Folder, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	var folders []model.Folder
	if err := dec.Decode(&folders); err != nil {
		return nil, fmt.Errorf("decode folders: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode folders: trailing data")
	}
	return model.CloneFolders(folders), nil
}

func isNullOrEmpty(b []byte) bool {
	s := strings.TrimSpace(string(b))
	return s == "" || s == "null"
}

func indentJSON(b []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return b
	}
	return buf.Bytes()
}
