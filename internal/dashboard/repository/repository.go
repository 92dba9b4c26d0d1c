package repository

import (
	"context"
	"errors"

	"github.com/scratchboard/dashboard/internal/dashboard"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Repository persists the single dashboard document. Load returns ErrNotFound
// when nothing has been stored yet; Save replaces the stored document whole.
type Repository interface {
	Load(ctx context.Context) (*dashboard.Document, error)
	Save(ctx context.Context, doc *dashboard.Document) error
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
