package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/scratchboard/dashboard/internal/dashboard"
	"github.com/scratchboard/dashboard/internal/storage"
	"github.com/scratchboard/dashboard/pkg/logger"
	"github.com/scratchboard/dashboard/pkg/metrics"
)

// ObjectStore is the subset of the object storage client the mirror needs.
// DownloadFile wraps storage.ErrObjectNotFound for a missing key.
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, error)
}

// MirrorRepo wraps a primary repository and copies every saved document to
// object storage as <prefix>/latest.json and <prefix>/<date>.json.
// Snapshot failures are logged and never fail the save.
type MirrorRepo struct {
	primary Repository
	objects ObjectStore
	prefix  string
	now     func() time.Time
	log     *slog.Logger
}

func NewMirrorRepo(primary Repository, objects ObjectStore, prefix string) *MirrorRepo {
	return &MirrorRepo{
		primary: primary,
		objects: objects,
		prefix:  prefix,
		now:     time.Now,
		log:     logger.With("snapshot-mirror"),
	}
}

func (m *MirrorRepo) latestKey() string {
	return path.Join(m.prefix, "latest.json")
}

func (m *MirrorRepo) datedKey(t time.Time) string {
	return path.Join(m.prefix, t.Format(dashboard.DateLayout)+".json")
}

// Load reads the primary store. When the primary is empty it restores
// latest.json and writes it back to the primary. Only a missing snapshot
// yields ErrNotFound; any other restore failure is returned so a transient
// outage never leads to a default document overwriting the snapshot.
func (m *MirrorRepo) Load(ctx context.Context) (*dashboard.Document, error) {
	doc, err := m.primary.Load(ctx)
	if !errors.Is(err, ErrNotFound) {
		return doc, err
	}
	restored, rerr := m.restore(ctx)
	if rerr != nil {
		if errors.Is(rerr, storage.ErrObjectNotFound) {
			m.log.Info("no snapshot to restore", "key", m.latestKey())
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("restore snapshot %s: %w", m.latestKey(), rerr)
	}
	if err := m.primary.Save(ctx, restored); err != nil {
		m.log.Warn("restored snapshot not written to primary", "error", err)
	}
	m.log.Info("document restored from snapshot", "key", m.latestKey(), "links", len(restored.ScratchLinks))
	return restored, nil
}

func (m *MirrorRepo) restore(ctx context.Context) (*dashboard.Document, error) {
	rc, err := m.objects.DownloadFile(ctx, m.latestKey())
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var doc dashboard.Document
	if err := json.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

func (m *MirrorRepo) Save(ctx context.Context, doc *dashboard.Document) error {
	if err := m.primary.Save(ctx, doc); err != nil {
		return err
	}
	b, err := json.Marshal(doc)
	if err != nil {
		m.log.Warn("snapshot encode failed", "error", err)
		metrics.SnapshotUploads.WithLabelValues("error").Inc()
		return nil
	}
	for _, key := range []string{m.latestKey(), m.datedKey(m.now())} {
		if err := m.objects.UploadFile(ctx, key, bytes.NewReader(b), int64(len(b)), "application/json"); err != nil {
			m.log.Warn("snapshot upload failed", "key", key, "error", err)
			metrics.SnapshotUploads.WithLabelValues("error").Inc()
			continue
		}
		metrics.SnapshotUploads.WithLabelValues("ok").Inc()
	}
	return nil
}

func (m *MirrorRepo) Ping(ctx context.Context) error {
	if p, ok := m.primary.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
