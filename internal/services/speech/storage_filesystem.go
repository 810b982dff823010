package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FilesystemStorage stores audio files under a base directory
type FilesystemStorage struct {
	baseDir string
}

var _ StorageBackend = (*FilesystemStorage)(nil)

// NewFilesystemStorage creates a filesystem storage backend, creating the
// base directory if needed.
func NewFilesystemStorage(baseDir string) (*FilesystemStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	return &FilesystemStorage{baseDir: baseDir}, nil
}

// Save writes the reader's content to filename under the base directory and
// returns the stored path.
func (s *FilesystemStorage) Save(ctx context.Context, reader io.Reader, filename string) (string, error) {
	path := filepath.Join(s.baseDir, filepath.Clean(filename))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	// Write to a temp file first so a crash never leaves a partial asset
	tmp, err := os.CreateTemp(filepath.Dir(path), ".audio_*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to move audio into place: %w", err)
	}

	return path, nil
}

// Open opens a stored audio file for reading
func (s *FilesystemStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	return file, nil
}

// Delete removes a stored audio file
func (s *FilesystemStorage) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete audio file: %w", err)
	}
	return nil
}

// Exists reports whether a stored audio file is present
func (s *FilesystemStorage) Exists(ctx context.Context, path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
