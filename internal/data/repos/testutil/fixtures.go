package testutil

import (
	"context"
	"testing"
	"time"

	types "github.com/yungbote/publisher-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func SeedMedia(tb testing.TB, ctx context.Context, tx *gorm.DB, title, username string) *types.Media {
	tb.Helper()
	m := &types.Media{Title: title, Username: username}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed media: %v", err)
	}
	return m
}

func SeedPost(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, image *string) *types.Post {
	tb.Helper()
	p := &types.Post{Title: title, Text: "text of " + title, Image: image}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed post: %v", err)
	}
	return p
}

func SeedPublication(tb testing.TB, ctx context.Context, tx *gorm.DB, mediaID, postID uint, date time.Time) *types.Publication {
	tb.Helper()
	p := &types.Publication{MediaID: mediaID, PostID: postID, Date: date.UTC()}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		tb.Fatalf("seed publication: %v", err)
	}
	return p
}
