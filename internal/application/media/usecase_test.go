package media_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/media"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/infrastructure/storage"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUpload_GuardaConExtensionPorContenido(t *testing.T) {
	store := storage.NewMemoryStorage("http://files")
	uc := media.NewUploadUseCase(store, 1024)

	got, err := uc.Upload(context.Background(), media.FolderUsers, bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Path, "users/"))
	assert.True(t, strings.HasSuffix(got.Path, ".png"))
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, "http://files/"+got.Path, got.URL)
	assert.Equal(t, int64(len(pngHeader)), got.Size)

	_, _, ok := store.Get(got.Path)
	assert.True(t, ok)
}

func TestUpload_Rechazos(t *testing.T) {
	uc := media.NewUploadUseCase(storage.NewMemoryStorage("http://files"), 16)
	ctx := context.Background()

	_, err := uc.Upload(ctx, "documents", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Upload(ctx, media.FolderAnimals, strings.NewReader("hola, no soy una imagen"), 10)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge, "el tamaño real supera el límite")

	_, err = uc.Upload(ctx, media.FolderAnimals, strings.NewReader("texto plano"), 11)
	assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)

	_, err = uc.Upload(ctx, media.FolderAnimals, bytes.NewReader(pngHeader), 100)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	_, err = uc.Upload(ctx, media.FolderAnimals, strings.NewReader(""), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	store := storage.NewMemoryStorage("http://files")
	uc := media.NewUploadUseCase(store, 1024)
	ctx := context.Background()

	got, err := uc.Upload(ctx, "", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Path, "animals/"))

	for _, bad := range []string{"", "animals", "otros/x.png", "animals/../users/x.png", "animals/a/b.png"} {
		assert.ErrorIs(t, uc.Delete(ctx, bad), domain.ErrInvalidInput, bad)
	}
	require.NoError(t, uc.Delete(ctx, "/"+got.Path))
	assert.ErrorIs(t, uc.Delete(ctx, got.Path), domain.ErrNotFound)
}
