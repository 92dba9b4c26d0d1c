package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/scratchboard/dashboard/internal/dashboard"
	"github.com/scratchboard/dashboard/internal/dashboard/repository"
	"github.com/scratchboard/dashboard/pkg/apperr"
	"github.com/scratchboard/dashboard/pkg/logger"
	"github.com/scratchboard/dashboard/pkg/metrics"
)

// Service owns the dashboard document. Every operation runs its
// load → mutate → save cycle under one mutex, so requests served by the same
// process never lose each other's updates.
type Service struct {
	mu        sync.Mutex
	repo      repository.Repository
	refresher *Refresher
	creds     dashboard.AdminCredentials
	seed      *dashboard.Seed
	log       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRefresher replaces the default wall-clock refresher.
func WithRefresher(r *Refresher) Option {
	return func(s *Service) { s.refresher = r }
}

// WithSeed populates a newly created document from seed.
func WithSeed(seed *dashboard.Seed) Option {
	return func(s *Service) { s.seed = seed }
}

// New returns a Service over repo. creds are written into the document only
// when it is first created.
func New(repo repository.Repository, creds dashboard.AdminCredentials, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		creds: creds,
		log:   logger.With("dashboard-service"),
	}
	for _, o := range opts {
		o(s)
	}
	if s.refresher == nil {
		s.refresher = NewRefresher(nil)
	}
	return s
}

func (s *Service) initialDocument() (*dashboard.Document, error) {
	var links []dashboard.LinkEntry
	if s.seed != nil {
		entries, err := s.seed.Entries()
		if err != nil {
			return nil, apperr.Storage("seed document", err)
		}
		links = entries
	}
	doc := dashboard.NewDocument(s.creds, links)
	if s.seed != nil && s.seed.BestTimes != "" {
		doc.DailyData.BestTimes = s.seed.BestTimes
	}
	return doc, nil
}

// loadLocked returns the stored document, writing the default one first
// when none exists. Callers hold s.mu.
func (s *Service) loadLocked(ctx context.Context) (*dashboard.Document, error) {
	doc, err := s.repo.Load(ctx)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Storage("load document", err)
	}
	doc, err = s.initialDocument()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, apperr.Storage("initialize document", err)
	}
	s.log.Info("initialized dashboard document", "links", len(doc.ScratchLinks))
	return doc, nil
}

func (s *Service) read(ctx context.Context) (*dashboard.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Service) update(ctx context.Context, fn func(doc *dashboard.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return apperr.Storage("save document", err)
	}
	return nil
}

// Document returns the current document, creating it when absent.
func (s *Service) Document(ctx context.Context) (*dashboard.Document, error) {
	return s.read(ctx)
}

// Refresh regenerates the daily data when it was last generated before
// today. A fresh document is returned unchanged and nothing is written.
func (s *Service) Refresh(ctx context.Context) (*dashboard.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Service) refreshLocked(ctx context.Context) (*dashboard.Document, error) {
	doc, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	if !s.refresher.Apply(doc) {
		return doc, nil
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, apperr.Storage("save refreshed document", err)
	}
	metrics.DailyRefreshes.Inc()
	s.log.Info("daily data regenerated", "date", *doc.DailyData.LastUpdated, "winners", doc.DailyData.Winners)
	return doc, nil
}

// Dashboard refreshes the daily data if needed and returns the public view.
func (s *Service) Dashboard(ctx context.Context) (*dashboard.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.refreshLocked(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.NewView(doc), nil
}

// ListLinks returns every stored link as persisted.
func (s *Service) ListLinks(ctx context.Context) ([]dashboard.LinkEntry, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.ScratchLinks, nil
}

// CreateLink appends a link built from p under a fresh id.
func (s *Service) CreateLink(ctx context.Context, p dashboard.LinkPatch) (dashboard.LinkEntry, error) {
	if missing := p.MissingRequired(); len(missing) > 0 {
		s.log.Debug("rejected link create", "missing", strings.Join(missing, ","))
		return dashboard.LinkEntry{}, apperr.Validation("Missing data for new link")
	}
	var created dashboard.LinkEntry
	err := s.update(ctx, func(doc *dashboard.Document) error {
		created = dashboard.NewLinkEntry(p)
		for doc.HasLink(created.ID) {
			created.ID = dashboard.NewLinkID()
		}
		doc.ScratchLinks = append(doc.ScratchLinks, created)
		return nil
	})
	if err != nil {
		return dashboard.LinkEntry{}, err
	}
	metrics.LinkMutations.WithLabelValues("create").Inc()
	return created.Clone(), nil
}

// UpdateLink merges p into the link with id. An unknown id is reported
// before an empty patch.
func (s *Service) UpdateLink(ctx context.Context, id string, p dashboard.LinkPatch) (dashboard.LinkEntry, error) {
	var updated dashboard.LinkEntry
	err := s.update(ctx, func(doc *dashboard.Document) error {
		i := doc.FindLink(id)
		if i < 0 {
			return apperr.NotFound("Link not found")
		}
		if p.Empty() {
			return apperr.Validation("No data provided for update")
		}
		p.Apply(&doc.ScratchLinks[i])
		updated = doc.ScratchLinks[i].Clone()
		return nil
	})
	if err != nil {
		return dashboard.LinkEntry{}, err
	}
	metrics.LinkMutations.WithLabelValues("update").Inc()
	return updated, nil
}

// DeleteLink removes the link and clears the recommendation when it
// pointed at the removed link.
func (s *Service) DeleteLink(ctx context.Context, id string) error {
	err := s.update(ctx, func(doc *dashboard.Document) error {
		i := doc.FindLink(id)
		if i < 0 {
			return apperr.NotFound("Link not found")
		}
		kept := make([]dashboard.LinkEntry, 0, len(doc.ScratchLinks)-1)
		kept = append(kept, doc.ScratchLinks[:i]...)
		kept = append(kept, doc.ScratchLinks[i+1:]...)
		doc.ScratchLinks = kept
		if doc.DailyData.IsRecommended(id) {
			doc.DailyData.RecommendedLinkID = nil
		}
		return nil
	})
	if err != nil {
		return err
	}
	metrics.LinkMutations.WithLabelValues("delete").Inc()
	return nil
}

// ImportLinks appends already-built entries, assigning new ids on collision.
func (s *Service) ImportLinks(ctx context.Context, entries []dashboard.LinkEntry) (int, error) {
	err := s.update(ctx, func(doc *dashboard.Document) error {
		for _, e := range entries {
			e = e.Clone()
			for e.ID == "" || doc.HasLink(e.ID) {
				e.ID = dashboard.NewLinkID()
			}
			doc.ScratchLinks = append(doc.ScratchLinks, e)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// DailyData returns the stored daily data without refreshing it.
func (s *Service) DailyData(ctx context.Context) (dashboard.DailyData, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return dashboard.DailyData{}, err
	}
	return doc.DailyData, nil
}

// UpdateDailyData applies the allow-listed fields. A null or empty body is
// rejected; a body with only unknown keys leaves the data unchanged. A
// recommendation that names an unknown link is rejected before anything is
// changed.
func (s *Service) UpdateDailyData(ctx context.Context, p dashboard.DailyDataPatch) (dashboard.DailyData, error) {
	if p.NoFields() {
		return dashboard.DailyData{}, apperr.Validation("No data provided for update")
	}
	if p.Empty() {
		return s.DailyData(ctx)
	}
	var out dashboard.DailyData
	err := s.update(ctx, func(doc *dashboard.Document) error {
		if p.RecommendedLinkID.Set && p.RecommendedLinkID.Value != nil && !doc.HasLink(*p.RecommendedLinkID.Value) {
			return apperr.Validation("Recommended link ID does not exist")
		}
		p.Apply(&doc.DailyData)
		out = doc.DailyData.Clone()
		return nil
	})
	if err != nil {
		return dashboard.DailyData{}, err
	}
	return out, nil
}

// Authenticate checks username and password against the stored credentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) error {
	doc, err := s.read(ctx)
	if err != nil {
		return err
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(doc.AdminCredentials.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(doc.AdminCredentials.Password)) == 1
	if !userOK || !passOK {
		return apperr.Unauthorized("Invalid credentials")
	}
	return nil
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.repo.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
