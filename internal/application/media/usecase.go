// Package media sube y elimina imágenes de usuarios y animales.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
)

// Carpetas permitidas dentro del bucket.
const (
	FolderUsers   = "users"
	FolderAnimals = "animals"
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadUseCase valida y guarda imágenes.
type UploadUseCase struct {
	storage  ImageStorage
	maxBytes int64
}

// NewUploadUseCase construye el caso de uso. maxBytes es el tamaño máximo aceptado.
func NewUploadUseCase(storage ImageStorage, maxBytes int64) *UploadUseCase {
	return &UploadUseCase{storage: storage, maxBytes: maxBytes}
}

// Upload detecta el tipo por contenido, valida tamaño y guarda en folder/uuid.ext.
func (uc *UploadUseCase) Upload(ctx context.Context, folder string, r io.Reader, size int64) (*dto.UploadResponse, error) {
	if folder == "" {
		folder = FolderAnimals
	}
	if folder != FolderUsers && folder != FolderAnimals {
		return nil, domain.ErrInvalidInput
	}
	if size > uc.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	// Se lee un byte extra para detectar archivos que mienten sobre su tamaño.
	data, err := io.ReadAll(io.LimitReader(r, uc.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	if int64(len(data)) > uc.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return nil, domain.ErrUnsupportedMedia
	}

	path := folder + "/" + uuid.New().String() + ext
	obj, err := uc.storage.Put(ctx, path, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("guardar imagen: %w", err)
	}
	return &dto.UploadResponse{
		Path:        obj.Path,
		URL:         obj.URL,
		ContentType: obj.ContentType,
		Size:        obj.Size,
	}, nil
}

// Delete elimina una imagen por su ruta dentro del bucket.
func (uc *UploadUseCase) Delete(ctx context.Context, path string) error {
	path = strings.TrimPrefix(strings.TrimSpace(path), "/")
	folder, name, ok := strings.Cut(path, "/")
	if !ok || name == "" || strings.Contains(name, "/") || strings.Contains(path, "..") ||
		(folder != FolderUsers && folder != FolderAnimals) {
		return domain.ErrInvalidInput
	}
	return uc.storage.Delete(ctx, path)
}
