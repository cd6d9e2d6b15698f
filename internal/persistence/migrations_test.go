package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrationFilesSortedByName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_add_index.sql", "0001_init.sql", "0010_backfill.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"0001_init.sql", "0002_add_index.sql", "0010_backfill.sql"}, files)
}

func TestMigrationFilesMissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestRunMigrationsSkipsWithoutPool(t *testing.T) {
	err := RunMigrations(context.Background(), nil, t.TempDir(), zap.NewNop())
	require.NoError(t, err)
}
