package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocersmart/backend/config"
)

func testConfig(storage config.StorageConfig) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Upstream: config.UpstreamConfig{BaseURL: "http://127.0.0.1:1"},
		Stores:   config.StoresConfig{Source: "mock", Radius: 10},
		Storage:  storage,
	}
}

func TestNew_MemoryStorage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a, err := New(context.Background(), testConfig(config.StorageConfig{Type: StorageMemory}))
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Search)
	assert.NotNil(t, a.Registry)
	assert.NotNil(t, a.Session)

	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cache":{"entries":0`)
}

func TestNew_SQLiteStorageRestoresSession(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.StorageConfig{Type: StorageSQLite, DataDir: t.TempDir()})

	first, err := New(ctx, cfg)
	require.NoError(t, err)
	_, err = first.Session.Location.SetZipCode(ctx, "94103")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(ctx, cfg)
	require.NoError(t, err)
	defer second.Close()

	selection := second.Session.Location.Selection()
	assert.Equal(t, "94103", selection.ZipCode)
	assert.Len(t, selection.SelectedStores, 3)
}

func TestNew_UnknownStorage(t *testing.T) {
	_, err := New(context.Background(), testConfig(config.StorageConfig{Type: "redis"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage type")
}
