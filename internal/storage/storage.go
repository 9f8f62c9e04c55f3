// Package storage provides locked, atomic JSON persistence for files under
// ~/.forkup/.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Dir returns ~/.forkup without creating it.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".forkup"), nil
}

// SaveJSON atomically writes data as indented JSON to path.
// The parent directory is created if needed. Data is written to a sibling
// temp file which is renamed over path, so readers never see a partial file.
func SaveJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, append(jsonData, '\n'), 0o600); err != nil {
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}

// LoadJSON reads JSON from path into dest.
// A missing file is reported as found=false without error.
func LoadJSON(path string, dest any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return true, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// Update loads path into dest under an exclusive lock, calls fn, and saves
// dest back if fn succeeds. The lock file lives next to path.
func Update(path string, dest any, fn func(found bool) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	lock := NewFileLock(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer lock.Unlock()

	found, err := LoadJSON(path, dest)
	if err != nil {
		return err
	}
	if err := fn(found); err != nil {
		return err
	}
	return SaveJSON(path, dest)
}
