package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// FileMedium stores one file per key under Dir. Writes go to a temp file in
// the same directory and are renamed over the target.
type FileMedium struct {
	Dir string
	mu  sync.Mutex
}

func NewFileMedium(dir string) (*FileMedium, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileMedium{Dir: dir}, nil
}

func (m *FileMedium) path(key string) string {
	return filepath.Join(m.Dir, url.PathEscape(key)+".json")
}

func (m *FileMedium) GetItem(_ context.Context, key string) (string, bool, error) {
	b, err := os.ReadFile(m.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (m *FileMedium) SetItem(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tmp, err := os.CreateTemp(m.Dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, m.path(key)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (m *FileMedium) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := os.Remove(m.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
