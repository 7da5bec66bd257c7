package engine

import (
	"fmt"
	"strings"
	"testing"

	"critiquehub/database"
	"critiquehub/internal/domain/members"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestEngine gives each test its own in-memory database with the
// full schema. Single connection: the shared-cache sqlite handle
// serializes writers the way the storage layer is expected to.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	return New(db, zerolog.Nop())
}

func newMember(t *testing.T, e *Engine, name string) members.Member {
	t.Helper()
	m := members.Member{
		Name:  name,
		Email: fmt.Sprintf("%s@example.com", strings.ToLower(name)),
	}
	require.NoError(t, e.db.Create(&m).Error)
	return m
}
