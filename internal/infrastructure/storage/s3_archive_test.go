package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandastore/facturacion/pkg/config"
)

type capturedPut struct {
	method      string
	path        string
	contentType string
}

func newFakeS3(t *testing.T, status int) (*httptest.Server, func() []capturedPut) {
	t.Helper()
	var (
		mu   sync.Mutex
		puts []capturedPut
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		puts = append(puts, capturedPut{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type")})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []capturedPut {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedPut(nil), puts...)
	}
}

func testStorageConfig(endpoint string) config.StorageConfig {
	return config.StorageConfig{
		Bucket:       "facturas-test",
		Endpoint:     endpoint,
		Region:       "us-east-1",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		UsePathStyle: true,
		Prefix:       "facturas/",
	}
}

func TestNewS3Archive_SinBucket(t *testing.T) {
	_, err := NewS3Archive(context.Background(), config.StorageConfig{}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")
}

func TestNewS3Archive_AccessKeySinSecret(t *testing.T) {
	cfg := testStorageConfig("http://localhost:9000")
	cfg.SecretKey = ""

	_, err := NewS3Archive(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret key")
}

func TestS3Archive_Save(t *testing.T) {
	srv, captured := newFakeS3(t, http.StatusOK)
	a, err := NewS3Archive(context.Background(), testStorageConfig(srv.URL), zerolog.Nop())
	require.NoError(t, err)

	loc, err := a.Save(context.Background(), "A001197.pdf", []byte("%PDF-1.3 test"))

	require.NoError(t, err)
	assert.Equal(t, "s3://facturas-test/facturas/A001197.pdf", loc)
	puts := captured()
	require.Len(t, puts, 1)
	assert.Equal(t, http.MethodPut, puts[0].method)
	assert.Equal(t, "/facturas-test/facturas/A001197.pdf", puts[0].path)
	assert.Equal(t, "application/pdf", puts[0].contentType)
}

func TestS3Archive_SaveClaveVacia(t *testing.T) {
	a, err := NewS3Archive(context.Background(), testStorageConfig("http://localhost:9000"), zerolog.Nop())
	require.NoError(t, err)

	_, err = a.Save(context.Background(), "/", []byte("x"))
	assert.Error(t, err)
}

func TestS3Archive_SaveErrorDelServidor(t *testing.T) {
	srv, _ := newFakeS3(t, http.StatusForbidden)
	a, err := NewS3Archive(context.Background(), testStorageConfig(srv.URL), zerolog.Nop())
	require.NoError(t, err)

	_, err = a.Save(context.Background(), "A000001.pdf", []byte("%PDF"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "facturas/A000001.pdf")
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "https://minio.local:9000", normalizeEndpoint("minio.local:9000"))
	assert.Equal(t, "http://minio.local", normalizeEndpoint("http://minio.local"))
}
