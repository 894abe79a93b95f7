package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sipblog/internal/config"
)

type Storage interface {
	SaveImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, error)
	DeleteImage(ctx context.Context, name string) error
}

// LocalStorage keeps post images in a flat static directory keyed by the
// original filename. A second upload with the same name overwrites the first.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(cfg *config.Config) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.ImageDir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог изображений: %w", err)
	}
	return &LocalStorage{dir: cfg.ImageDir}, nil
}

func (s *LocalStorage) SaveImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, error) {
	// strip any path components from the client-supplied name
	name := filepath.Base(fileName)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("недопустимое имя файла: %q", fileName)
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("ошибка при создании файла изображения: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("ошибка при записи изображения: %w", err)
	}

	return name, nil
}

func (s *LocalStorage) DeleteImage(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка при удалении изображения: %w", err)
	}
	return nil
}
