package storage

import (
	"context"
	"sync"

	"github.com/yourusername/crm-records/internal/domain/entity"
	"github.com/yourusername/crm-records/internal/domain/repository"
)

type memoryActivityRepository struct {
	mu      sync.RWMutex
	entries []entity.Activity
}

// NewMemoryActivityRepository in-memory activity journal, used when no DB path is configured
func NewMemoryActivityRepository() repository.ActivityRepository {
	return &memoryActivityRepository{
		entries: []entity.Activity{},
	}
}

// Log appends an entry
func (m *memoryActivityRepository) Log(ctx context.Context, activity entity.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, activity)
	return nil
}

// Recent newest first
func (m *memoryActivityRepository) Recent(ctx context.Context, limit int) ([]entity.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.entries)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]entity.Activity, 0, n)
	for i := len(m.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

// Clear drops every entry
func (m *memoryActivityRepository) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = []entity.Activity{}
	return nil
}

// Close no-op
func (m *memoryActivityRepository) Close() error {
	return nil
}
