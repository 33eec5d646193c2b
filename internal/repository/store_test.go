package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"useradmin/internal/config"
	"useradmin/internal/model"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name   string
		driver string
	}{
		{"file", config.DriverFile},
		{"sqlite", config.DriverSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := &config.Config{
				StoreDriver: tt.driver,
				DataFile:    filepath.Join(dir, "db.json"),
				SQLitePath:  filepath.Join(dir, "users.db"),
			}
			ctx := context.Background()

			repo, closeFn, err := Open(cfg, false)
			require.NoError(t, err)
			require.NoError(t, repo.Create(ctx, &model.User{ID: "1", Name: "Alice", Email: "alice@example.com"}))
			require.NoError(t, closeFn())

			repo, closeFn, err = Open(cfg, false)
			require.NoError(t, err)
			users, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Len(t, users, 1)
			require.NoError(t, closeFn())

			repo, closeFn, err = Open(cfg, true)
			require.NoError(t, err)
			defer closeFn()
			users, err = repo.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, users)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	repo, _, err := Open(&config.Config{StoreDriver: "postgres"}, false)

	assert.Nil(t, repo)
	assert.ErrorContains(t, err, "unknown store driver")
}
