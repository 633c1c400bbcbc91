package store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-contacts/internal/config"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAvatarStorage_Disabled(t *testing.T) {
	storage, err := NewAvatarStorage(context.Background(), config.Avatars{}, logger.Nop())
	require.NoError(t, err)

	_, err = storage.UploadAvatar(context.Background(), "johnny", strings.NewReader("img"), 3, "image/png")
	assert.ErrorIs(t, err, ErrAvatarStorageDisabled)
}

func TestS3AvatarStorage_UploadAvatar(t *testing.T) {
	var (
		mu        sync.Mutex
		gotMethod string
		gotPath   string
		gotBody   string
		gotType   string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mu.Lock()
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody = string(body)
		gotType = r.Header.Get("Content-Type")
		mu.Unlock()

		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	storage, err := NewAvatarStorage(context.Background(), config.Avatars{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		Bucket:    "contacts",
		AccessKey: "access",
		SecretKey: "secret",
		PublicURL: "http://cdn.local/",
	}, logger.Nop())
	require.NoError(t, err)

	url, err := storage.UploadAvatar(context.Background(), "johnny", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "http://cdn.local/contacts/avatars/johnny", url)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/contacts/avatars/johnny", gotPath)
	assert.Equal(t, "png-bytes", gotBody)
	assert.Equal(t, "image/png", gotType)
}

func TestS3AvatarStorage_UploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	storage, err := NewAvatarStorage(context.Background(), config.Avatars{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		Bucket:    "contacts",
		AccessKey: "access",
		SecretKey: "secret",
	}, logger.Nop())
	require.NoError(t, err)

	_, err = storage.UploadAvatar(context.Background(), "johnny", strings.NewReader("x"), 1, "image/png")
	assert.Error(t, err)
}
