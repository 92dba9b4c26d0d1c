// Package bootstrap builds the store and service from configuration. The
// server and dashctl share it so both see the same document.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/scratchboard/dashboard/internal/config"
	"github.com/scratchboard/dashboard/internal/dashboard"
	"github.com/scratchboard/dashboard/internal/dashboard/repository"
	"github.com/scratchboard/dashboard/internal/dashboard/service"
	"github.com/scratchboard/dashboard/internal/database"
	"github.com/scratchboard/dashboard/internal/storage"
	"github.com/scratchboard/dashboard/pkg/logger"
)

const mongoConnectAttempts = 5

// OpenRepository returns the configured backend, wrapped in the MinIO
// mirror when an endpoint is set. cleanup releases any connections.
func OpenRepository(ctx context.Context, cfg *config.Config) (repo repository.Repository, cleanup func(), err error) {
	cleanup = func() {}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		repo = repository.NewMemoryRepo()
		logger.Warnf("using in-memory store; state is lost on exit")
	case config.BackendMongo:
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { _ = client.Disconnect(context.Background()) }
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		repo = repository.NewMongoRepo(col, repository.DefaultRecordID)
		logger.Infof("using MongoDB store %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
	case config.BackendFile, "":
		repo = repository.NewFileRepo(cfg.Store.DataFile)
		logger.Infof("using file store %s", cfg.Store.DataFile)
	default:
		return nil, cleanup, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	mc, ok := storage.FromConfig(cfg)
	if !ok {
		return repo, cleanup, nil
	}
	objects, err := storage.NewMinIOStorage(ctx, mc)
	if err != nil {
		// the mirror is optional; keep serving from the primary store
		logger.Warnf("snapshot mirror disabled: %v", err)
		return repo, cleanup, nil
	}
	logger.Infof("mirroring snapshots to %s/%s", mc.Bucket, cfg.MinIO.Prefix)
	return repository.NewMirrorRepo(repo, objects, cfg.MinIO.Prefix), cleanup, nil
}

// NewService builds the dashboard service over repo using the configured
// credentials, time zone and optional seed file.
func NewService(cfg *config.Config, repo repository.Repository) (*service.Service, error) {
	opts := []service.Option{service.WithRefresher(service.NewRefresher(cfg.Store.Location))}
	if cfg.Store.SeedFile != "" {
		seed, err := dashboard.LoadSeedFile(cfg.Store.SeedFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithSeed(seed))
	}
	creds := dashboard.AdminCredentials{Username: cfg.Admin.Username, Password: cfg.Admin.Password}
	return service.New(repo, creds, opts...), nil
}
