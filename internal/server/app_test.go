package server

import (
	"context"
	"testing"
	"time"

	"gymdash/internal/config"

	"github.com/stretchr/testify/require"
)

func TestNewApp_FileDriver(t *testing.T) {
	cfg := &config.Config{
		ListenAddr:     ":0",
		BackendBaseURL: "http://127.0.0.1:9000",
		StorageDriver:  config.StorageDriverFile,
		DatabasePath:   t.TempDir(),
		RequestTimeout: time.Second,
	}

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.Nil(t, app.db)
}

func TestNewApp_UnknownDriver(t *testing.T) {
	cfg := &config.Config{
		ListenAddr:     ":0",
		BackendBaseURL: "http://127.0.0.1:9000",
		StorageDriver:  "redis",
		DatabasePath:   t.TempDir(),
		RequestTimeout: time.Second,
	}

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis")
}
