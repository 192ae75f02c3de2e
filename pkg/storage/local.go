package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps uploads on the local disk under a root directory that
// the HTTP server exposes as static files.
type LocalStorage struct {
	rootDir string
	baseURL string
}

func NewLocalStorage(rootDir, baseURL string) *LocalStorage {
	return &LocalStorage{
		rootDir: rootDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *LocalStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_ = contentType // recorded by real object stores; irrelevant on disk

	if err := ctx.Err(); err != nil {
		return "", err
	}

	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}

	fullPath := filepath.Join(s.rootDir, cleaned)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, filepath.ToSlash(cleaned)), nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid storage key %q", key)
	}

	err := os.Remove(filepath.Join(s.rootDir, cleaned))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
