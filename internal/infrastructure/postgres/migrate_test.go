package postgres

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL_CambiaEsquemaAPgx5(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/cabinet?sslmode=disable",
		migrateURL("postgres://u:p@db:5432/cabinet?sslmode=disable"))
	assert.Equal(t, "pgx5://u:p@db/cabinet", migrateURL("postgresql://u:p@db/cabinet"))
	assert.Equal(t, "pgx5://ya/listo", migrateURL("pgx5://ya/listo"))
}

func TestMigrationsFS_ContieneVersionInicial(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS time_entries")
	assert.Contains(t, string(up), "reference     VARCHAR(120) NOT NULL UNIQUE")

	_, err = fs.ReadFile(migrationsFS, "migrations/000001_init.down.sql")
	require.NoError(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(errors.New("23503 en texto")))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	p := nullIfEmpty("x")
	require.NotNil(t, p)
	assert.Equal(t, "x", *p)
	assert.Equal(t, "", derefStr(nil))
}
