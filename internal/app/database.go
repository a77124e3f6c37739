package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/publisher-backend/internal/data/db"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type database interface {
	DB() *gorm.DB
	Close() error
}

func openDatabase(log *logger.Logger, cfg Config) (database, error) {
	var (
		store database
		err   error
	)
	switch cfg.DBDriver {
	case "", "postgres":
		store, err = db.NewPostgresService(log)
	case "sqlite":
		store, err = db.NewSQLiteService(log, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrateAll(store.DB()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return store, nil
}
