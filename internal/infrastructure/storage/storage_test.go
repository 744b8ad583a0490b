package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mamba1099/milk-farm-sub002/internal/domain"
	"github.com/Mamba1099/milk-farm-sub002/internal/infrastructure/storage"
)

func TestSupabase_PutYDelete(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotKey, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotAuth, gotKey, gotType = r.Header.Get("Authorization"), r.Header.Get("apikey"), r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Key":"farm-images/animals/a.png"}`))
	}))
	defer srv.Close()

	s := storage.NewSupabaseStorage(srv.URL+"/", "service-key", "farm-images")
	obj, err := s.Put(context.Background(), "animals/a.png", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/storage/v1/object/farm-images/animals/a.png", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "service-key", gotKey)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, "png-bytes", gotBody)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/farm-images/animals/a.png", obj.URL)
	assert.Equal(t, int64(9), obj.Size)

	require.NoError(t, s.Delete(context.Background(), "animals/a.png"))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestSupabase_Errores(t *testing.T) {
	status, body := http.StatusBadRequest, `{"statusCode":"404","error":"not_found","message":"Object not found"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()
	s := storage.NewSupabaseStorage(srv.URL, "k", "farm-images")

	err := s.Delete(context.Background(), "animals/x.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	status, body = http.StatusConflict, `{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`
	_, err = s.Put(context.Background(), "animals/x.png", "image/png", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, domain.ErrConflict)

	status, body = http.StatusInternalServerError, `boom`
	_, err = s.Put(context.Background(), "animals/x.png", "image/png", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestMemory(t *testing.T) {
	s := storage.NewMemoryStorage("http://localhost/uploads")
	ctx := context.Background()

	obj, err := s.Put(ctx, "users/u.jpg", "image/jpeg", strings.NewReader("jpg"), 3)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/uploads/users/u.jpg", obj.URL)

	data, ct, ok := s.Get("users/u.jpg")
	require.True(t, ok)
	assert.Equal(t, "jpg", string(data))
	assert.Equal(t, "image/jpeg", ct)

	_, err = s.Put(ctx, "users/u.jpg", "image/jpeg", strings.NewReader("jpg"), 3)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, s.Delete(ctx, "users/u.jpg"))
	assert.ErrorIs(t, s.Delete(ctx, "users/u.jpg"), domain.ErrNotFound)
	assert.Equal(t, 0, s.Len())
}
