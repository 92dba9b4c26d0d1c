package storage

import "github.com/scratchboard/dashboard/internal/config"

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// FromConfig extracts the MinIO settings. ok is false when no endpoint is set.
func FromConfig(cfg *config.Config) (c *MinIOConfig, ok bool) {
	if cfg.MinIO.Endpoint == "" {
		return nil, false
	}
	return &MinIOConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		UseSSL:    cfg.MinIO.UseSSL,
		Bucket:    cfg.MinIO.Bucket,
	}, true
}
