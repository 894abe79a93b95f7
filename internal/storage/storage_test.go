package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sipblog/internal/config"
)

func newLocalStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewLocalStorage(&config.Config{ImageDir: dir})
	require.NoError(t, err)

	return store, dir
}

func TestLocalStorage_SaveImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Файл сохраняется под исходным именем", func(t *testing.T) {
		store, dir := newLocalStorage(t)

		name, err := store.SaveImage(ctx, "photo.png", strings.NewReader("png-bytes"), 9)

		require.NoError(t, err)
		assert.Equal(t, "photo.png", name)

		data, err := os.ReadFile(filepath.Join(dir, "photo.png"))
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
	})

	t.Run("Повторная загрузка перезаписывает файл", func(t *testing.T) {
		store, dir := newLocalStorage(t)

		_, err := store.SaveImage(ctx, "photo.png", strings.NewReader("first"), 5)
		require.NoError(t, err)
		_, err = store.SaveImage(ctx, "photo.png", strings.NewReader("second"), 6)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "photo.png"))
		require.NoError(t, err)
		assert.Equal(t, "second", string(data))
	})

	t.Run("Путь в имени файла отбрасывается", func(t *testing.T) {
		store, dir := newLocalStorage(t)

		name, err := store.SaveImage(ctx, "../../etc/evil.png", strings.NewReader("x"), 1)

		require.NoError(t, err)
		assert.Equal(t, "evil.png", name)
		assert.FileExists(t, filepath.Join(dir, "evil.png"))
	})
}

func TestLocalStorage_DeleteImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Удаление существующего и отсутствующего файла", func(t *testing.T) {
		store, dir := newLocalStorage(t)

		_, err := store.SaveImage(ctx, "photo.png", strings.NewReader("x"), 1)
		require.NoError(t, err)

		assert.NoError(t, store.DeleteImage(ctx, "photo.png"))
		assert.NoFileExists(t, filepath.Join(dir, "photo.png"))

		// deleting twice is not an error
		assert.NoError(t, store.DeleteImage(ctx, "photo.png"))
	})
}
