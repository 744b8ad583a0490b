package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/media"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
)

var _ media.ImageStorage = (*MemoryStorage)(nil)

// MemoryStorage bucket en memoria; se usa cuando SUPABASE_URL no está configurado.
type MemoryStorage struct {
	mu      sync.Mutex
	baseURL string
	objects map[string]memoryObject
}

type memoryObject struct {
	contentType string
	data        []byte
}

// NewMemoryStorage construye el bucket vacío. baseURL prefija las URLs devueltas.
func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{baseURL: baseURL, objects: map[string]memoryObject{}}
}

func (s *MemoryStorage) Put(_ context.Context, path, contentType string, body io.Reader, _ int64) (*entity.StoredObject, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("storage: leer cuerpo: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; ok {
		return nil, domain.ErrConflict
	}
	s.objects[path] = memoryObject{contentType: contentType, data: data}
	return &entity.StoredObject{
		Path:        path,
		URL:         s.baseURL + "/" + path,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

func (s *MemoryStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return domain.ErrNotFound
	}
	delete(s.objects, path)
	return nil
}

// Get devuelve el contenido guardado (para tests).
func (s *MemoryStorage) Get(path string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[path]
	return o.data, o.contentType, ok
}

// Len número de objetos guardados.
func (s *MemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
