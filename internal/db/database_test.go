package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/fanshop/internal/db"
	"github.com/Skotchmaster/fanshop/internal/db/dbtest"
	"github.com/Skotchmaster/fanshop/internal/models"
)

func TestOpen_Rejects(t *testing.T) {
	t.Parallel()

	_, err := db.Open(context.Background(), "sqlite", "")
	assert.Error(t, err)

	_, err = db.Open(context.Background(), "mysql", "root@/shop")
	assert.Error(t, err)
}

func TestMigrate_CreatesTables(t *testing.T) {
	t.Parallel()

	gdb := dbtest.New(t)
	m := gdb.Migrator()
	for _, table := range []string{models.UsersTable, models.NewsTable, models.ProductsTable, models.MerchTable} {
		assert.True(t, m.HasTable(table), table)
	}

	require.NoError(t, db.Ping(context.Background(), gdb))
	// Re-running is a no-op.
	require.NoError(t, db.Migrate(context.Background(), gdb))
}
