package repository

import (
	"context"
	"sync"

	"github.com/scratchboard/dashboard/internal/dashboard"
)

// MemoryRepo keeps the document in process memory. Used by tests and by
// STORE_BACKEND=memory for throwaway runs.
type MemoryRepo struct {
	mu    sync.RWMutex
	doc   *dashboard.Document
	saves int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Load(ctx context.Context) (*dashboard.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return nil, ErrNotFound
	}
	return m.doc.Clone(), nil
}

func (m *MemoryRepo) Save(ctx context.Context, doc *dashboard.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = doc.Clone()
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryRepo) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

func (m *MemoryRepo) Ping(ctx context.Context) error { return nil }
