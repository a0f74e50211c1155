package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps uploads as flat files in one directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("assets: create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

// Ping checks the upload directory is still there.
func (s *LocalStore) Ping(context.Context) error {
	fi, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("assets: stat upload dir: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("assets: %s is not a directory", s.dir)
	}
	return nil
}

// Path resolves a stored name to its file, refusing anything that is not a
// plain sanitised filename.
func (s *LocalStore) Path(name string) (string, error) {
	if name == "" || SanitizeFilename(name) != name {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, name), nil
}

// Put writes body to a temporary file and renames it into place so readers
// never see a partial upload. The returned reference is the filename.
func (s *LocalStore) Put(ctx context.Context, name string, body io.Reader, _ string) (string, error) {
	path, err := s.Path(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("assets: create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("assets: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("assets: close: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("assets: rename: %w", err)
	}
	return name, nil
}

// Delete removes the file named by ref.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	path, err := s.Path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("assets: remove: %w", err)
	}
	return nil
}
