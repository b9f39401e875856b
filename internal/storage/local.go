package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage stores résumés on local disk, served back via a static route
type LocalStorage struct {
	dir     string
	baseURL string // public path prefix, e.g. /uploads
}

// NewLocalStorage creates the uploads directory if needed
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Store writes the upload to disk and returns its static URL
func (s *LocalStorage) Store(ctx context.Context, upload *Upload) (string, error) {
	body, key, err := prepare(upload)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, key)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create resume file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write resume file: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// Remove deletes the file behind a URL previously returned by Store
func (s *LocalStorage) Remove(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return nil
	}
	name := path.Base(url)
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Dir returns the directory files are stored under, for static serving
func (s *LocalStorage) Dir() string {
	return s.dir
}
