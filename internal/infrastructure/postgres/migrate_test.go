package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/lager?sslmode=disable", pgx5URL("postgres://u:p@localhost:5432/lager?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/lager", pgx5URL("postgresql://u@db/lager"))
	assert.Equal(t, "pgx5://already", pgx5URL("pgx5://already"))
}

func TestMigrationsEmbebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}
