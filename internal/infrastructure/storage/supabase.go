// Package storage implementa el puerto media.ImageStorage sobre Supabase Storage
// (API REST) o en memoria para desarrollo y tests.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Mamba1099/milk-farm-sub002/internal/application/media"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/domain/entity"
)

var _ media.ImageStorage = (*SupabaseStorage)(nil)

// SupabaseStorage adaptador de Supabase Storage usando net/http.
type SupabaseStorage struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewSupabaseStorage construye el adaptador. baseURL es la URL del proyecto (https://xyz.supabase.co).
func NewSupabaseStorage(baseURL, serviceKey, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type supabaseError struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// Put sube el objeto al bucket. No sobrescribe objetos existentes.
func (s *SupabaseStorage) Put(ctx context.Context, path, contentType string, body io.Reader, size int64) (*entity.StoredObject, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("storage: crear request: %w", err)
	}
	s.authorize(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")
	req.ContentLength = size

	if err := s.do(req); err != nil {
		return nil, err
	}
	return &entity.StoredObject{
		Path:        path,
		URL:         s.PublicURL(path),
		ContentType: contentType,
		Size:        size,
	}, nil
}

// Delete elimina el objeto. Devuelve domain.ErrNotFound si no existe.
func (s *SupabaseStorage) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(path), nil)
	if err != nil {
		return fmt.Errorf("storage: crear request: %w", err)
	}
	s.authorize(req)
	return s.do(req)
}

// PublicURL URL pública del objeto (bucket público).
func (s *SupabaseStorage) PublicURL(path string) string {
	return s.baseURL + "/storage/v1/object/public/" + url.PathEscape(s.bucket) + "/" + escapePath(path)
}

func (s *SupabaseStorage) objectURL(path string) string {
	return s.baseURL + "/storage/v1/object/" + url.PathEscape(s.bucket) + "/" + escapePath(path)
}

func (s *SupabaseStorage) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
}

func (s *SupabaseStorage) do(req *http.Request) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx := req.Context(); ctx.Err() != nil {
			return fmt.Errorf("storage: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("storage: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
	if err != nil {
		return fmt.Errorf("storage: leer respuesta: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Supabase a veces responde 400 con statusCode "404" en el cuerpo.
	var e supabaseError
	_ = json.Unmarshal(raw, &e)
	if resp.StatusCode == http.StatusNotFound || e.StatusCode == "404" {
		return domain.ErrNotFound
	}
	if resp.StatusCode == http.StatusConflict || e.StatusCode == "409" {
		return domain.ErrConflict
	}
	if e.Message != "" {
		return fmt.Errorf("storage: Supabase HTTP %d (%s): %s", resp.StatusCode, e.Error, e.Message)
	}
	return fmt.Errorf("storage: Supabase HTTP %d: %s", resp.StatusCode, string(raw))
}

func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
