package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewSQLiteService opens path with foreign keys enforced. ":memory:" opens a
// private database that lives as long as its single pooled connection.
func NewSQLiteService(logg *logger.Logger, path string) (*SQLiteService, error) {
	serviceLog := logg.With("service", "SQLiteService")

	db, err := gorm.Open(sqlite.Open(SQLiteDSN(path)), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	// SQLite serialises writers anyway; one connection keeps in-memory
	// databases and PRAGMAs consistent.
	sqlDB.SetMaxOpenConns(1)

	serviceLog.Info("Opened SQLite", "path", path)
	return &SQLiteService{db: db, log: serviceLog}, nil
}

func SQLiteDSN(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "_foreign_keys=on"
}

func (s *SQLiteService) DB() *gorm.DB { return s.db }

func (s *SQLiteService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
