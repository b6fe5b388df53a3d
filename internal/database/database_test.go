package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel/internal/domain"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("hostel.db"))
	assert.False(t, IsPostgres(":memory:"))
}

func TestMigrateSQLite(t *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(t, err)

	require.NoError(t, Migrate(context.Background(), db, ":memory:"))

	for _, m := range domain.Models() {
		assert.True(t, db.Migrator().HasTable(m), "%T table missing", m)
	}
}
