package store

import (
	"fmt"
	"os"

	"stepfolio/internal/model"
)

// WriteBackupFile writes the collection as an indented foldersDataV4 JSON document.
// The file loads back through ReadBackupFile or as a raw blob under the storage key.
func WriteBackupFile(path string, folders []model.Folder) error {
	b, err := EncodeFolders(folders)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, append(indentJSON(b), '\n'))
}

// ReadBackupFile reads a collection written by WriteBackupFile (or exported by any
// other program using the same layout). Unlike Snapshot.Load, a malformed file is an error.
func ReadBackupFile(path string) ([]model.Folder, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	folders, err := DecodeFolders(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return folders, nil
}
