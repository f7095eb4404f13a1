package repository

import (
	"context"

	"github.com/yourusername/crm-records/internal/domain/entity"
)

// RecordStore full-snapshot persistence of both record tables
type RecordStore interface {
	// Save overwrites the stored snapshot; readers see either the old or the new one.
	Save(ctx context.Context, snapshot entity.Snapshot) error

	// Load returns the stored snapshot, or two empty tables when nothing was saved yet.
	Load(ctx context.Context) (entity.Snapshot, error)
}
