package testutil

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/publisher-backend/internal/data/db"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

var dbSeq atomic.Int64

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("failed to init logger: %v", err)
	}
	return log
}

// DB returns a migrated database private to the calling test. It runs against
// TEST_POSTGRES_DSN when set and an in-memory SQLite database otherwise.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	cfg := &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	}

	pgDSN := os.Getenv("TEST_POSTGRES_DSN")

	var (
		conn *gorm.DB
		err  error
	)
	if pgDSN != "" {
		conn, err = gorm.Open(postgres.Open(pgDSN), cfg)
	} else {
		name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
		conn, err = gorm.Open(sqlite.Open(name), cfg)
	}
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		tb.Fatalf("failed to get sql db: %v", err)
	}
	if pgDSN == "" {
		sqlDB.SetMaxOpenConns(1)
	}
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrateAll(conn); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	if pgDSN != "" {
		if err := conn.Exec(`TRUNCATE publication, media, post RESTART IDENTITY CASCADE`).Error; err != nil {
			tb.Fatalf("failed to truncate test db: %v", err)
		}
	}
	return conn
}

// Tx opens a transaction that is rolled back when the test ends. With SQLite
// the pool holds one connection, so everything in the test must go through tx.
func Tx(tb testing.TB, conn *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := conn.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
