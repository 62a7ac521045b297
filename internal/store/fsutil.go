package store

import (
	"os"
	"path/filepath"
	"runtime"
)

// atomicWriteFile writes b to a temp file in dir, syncs it, renames it over path
// and syncs dir so the rename itself is durable.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	return syncDir(dir)
}

func syncDir(dir string) error {
	// Directory handles cannot be fsynced on Windows.
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	if err := d.Sync(); err != nil {
		_ = d.Close()
		return err
	}
	return d.Close()
}

// WriteFileAtomic is atomicWriteFile for callers outside the package.
func WriteFileAtomic(path string, b []byte) error {
	return atomicWriteFile(filepath.Dir(path), ".stepfolio-*.tmp", path, b, 0o644)
}
