// Package testdb opens throwaway SQLite databases for repository tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"

	"budgeteer-go/internal/db"
	categoriesdomain "budgeteer-go/internal/domain/categories"
	historydomain "budgeteer-go/internal/domain/history"
	settingsdomain "budgeteer-go/internal/domain/settings"
	transactionsdomain "budgeteer-go/internal/domain/transactions"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns an in-memory database private to the test with every table
// migrated.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	conn, err := gorm.Open(sqlite.Open(dsn), db.GormConfig())
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, conn.AutoMigrate(
		&settingsdomain.UserSettings{},
		&categoriesdomain.Category{},
		&transactionsdomain.Transaction{},
		&historydomain.MonthHistory{},
		&historydomain.YearHistory{},
	))
	return conn
}
