package repository

import (
	"context"

	"github.com/yourusername/crm-records/internal/domain/entity"
)

// ActivityRepository journal of completed operations
type ActivityRepository interface {
	// Log appends an entry
	Log(ctx context.Context, activity entity.Activity) error

	// Recent newest first; limit <= 0 means all
	Recent(ctx context.Context, limit int) ([]entity.Activity, error)

	// Clear removes every entry
	Clear(ctx context.Context) error

	// Close releases the underlying resources
	Close() error
}
