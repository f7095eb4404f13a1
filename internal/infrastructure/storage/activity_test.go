package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/crm-records/internal/domain/entity"
	"github.com/yourusername/crm-records/internal/domain/repository"
)

func activityRepos(t *testing.T) map[string]repository.ActivityRepository {
	t.Helper()
	sqliteRepo, err := NewSQLiteActivityRepository(filepath.Join(t.TempDir(), "data", "activity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteRepo.Close() })

	return map[string]repository.ActivityRepository{
		"memory": NewMemoryActivityRepository(),
		"sqlite": sqliteRepo,
	}
}

func TestActivityRepositoryRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for name, repo := range activityRepos(t) {
		for i, action := range []string{entity.ActionLoad, entity.ActionImport, entity.ActionSave} {
			require.NoError(t, repo.Log(ctx, entity.Activity{
				ID:        uuid.New().String(),
				Action:    action,
				Kind:      entity.KindCustomers,
				Details:   "step",
				Rows:      i,
				Timestamp: base.Add(time.Duration(i) * time.Minute),
			}), name)
		}

		recent, err := repo.Recent(ctx, 2)
		require.NoError(t, err, name)
		require.Len(t, recent, 2, name)
		require.Equal(t, entity.ActionSave, recent[0].Action, name)
		require.Equal(t, entity.ActionImport, recent[1].Action, name)
		require.Equal(t, 1, recent[1].Rows, name)
		require.Equal(t, entity.KindCustomers, recent[1].Kind, name)

		all, err := repo.Recent(ctx, 0)
		require.NoError(t, err, name)
		require.Len(t, all, 3, name)

		require.NoError(t, repo.Clear(ctx), name)
		all, err = repo.Recent(ctx, 0)
		require.NoError(t, err, name)
		require.Empty(t, all, name)
	}
}

func TestNewSQLiteActivityRepositoryRequiresPath(t *testing.T) {
	_, err := NewSQLiteActivityRepository("")
	require.Error(t, err)
}
