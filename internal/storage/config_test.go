package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scratchboard/dashboard/internal/config"
)

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{}
	_, ok := FromConfig(cfg)
	require.False(t, ok)

	cfg.MinIO.Endpoint = "minio:9000"
	cfg.MinIO.Bucket = "snapshots"
	cfg.MinIO.UseSSL = true
	mc, ok := FromConfig(cfg)
	require.True(t, ok)
	require.Equal(t, "minio:9000", mc.Endpoint)
	require.Equal(t, "snapshots", mc.Bucket)
	require.True(t, mc.UseSSL)
}

func TestNewMinIOStorage_MissingConfig(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), nil)
	require.Error(t, err)
	_, err = NewMinIOStorage(context.Background(), &MinIOConfig{})
	require.Error(t, err)
}
