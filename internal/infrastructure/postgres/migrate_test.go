package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	assert.Equal(t, "pgx5://farm:pw@db:5432/milk?sslmode=disable", MigrationURL("postgres://farm:pw@db:5432/milk?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/d", MigrationURL("postgresql://u@h/d"))
	assert.Equal(t, "pgx5://u@h/d", MigrationURL("pgx5://u@h/d"))
}

func TestMigracionesEmbebidas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "migrations/000001_init.up.sql")
	assert.Contains(t, files, "migrations/000001_init.down.sql")
	assert.Equal(t, 0, len(files)%2, "cada migración tiene up y down")
}
