package media

import (
	"context"
	"io"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
)

// ImageStorage puerto del bucket de imágenes (Supabase Storage o memoria).
type ImageStorage interface {
	Put(ctx context.Context, path, contentType string, body io.Reader, size int64) (*entity.StoredObject, error)
	Delete(ctx context.Context, path string) error
}
