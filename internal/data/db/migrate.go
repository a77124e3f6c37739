package db

import (
	"fmt"

	types "github.com/yungbote/publisher-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	// Order matters: publication carries foreign keys to media and post.
	if err := db.AutoMigrate(
		&types.Media{},
		&types.Post{},
		&types.Publication{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsurePublicationIndexes(db)
}

// EnsurePublicationIndexes adds the composite lookups used by the reference
// checks and the date filters.
func EnsurePublicationIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_publication_media_date ON publication (media_id, "date");`).Error; err != nil {
		return fmt.Errorf("create idx_publication_media_date: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_publication_post_date ON publication (post_id, "date");`).Error; err != nil {
		return fmt.Errorf("create idx_publication_post_date: %w", err)
	}
	return nil
}
