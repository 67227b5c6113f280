package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LocalStorage writes images below a root directory served as static files.
type LocalStorage struct {
	root   string
	logger zerolog.Logger
}

// NewLocalStorage constructs a disk backed storage rooted at root.
func NewLocalStorage(root string, logger zerolog.Logger) *LocalStorage {
	if root == "" {
		root = "wwwroot"
	}
	return &LocalStorage{
		root:   root,
		logger: logger.With().Str("component", "local_storage").Logger(),
	}
}

// Root returns the directory images are written to.
func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) GenerateUniqueFilename(originalName string) string {
	return UniqueFilename(originalName)
}

func (s *LocalStorage) URL(folder, name string) (string, error) {
	return path.Join("/", folder, name), nil
}

func (s *LocalStorage) Save(ctx context.Context, folder, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(s.root, filepath.Clean(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create image folder: %w", err)
	}

	destination := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(destination, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	s.logger.Debug().Str("path", destination).Int("size_bytes", len(data)).Msg("image stored")
	return nil
}
