package repos

import (
	"github.com/yungbote/publisher-backend/internal/data/repos/media"
	"github.com/yungbote/publisher-backend/internal/data/repos/post"
	"github.com/yungbote/publisher-backend/internal/data/repos/publication"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type MediaRepo = media.MediaRepo
type PostRepo = post.PostRepo
type PublicationRepo = publication.PublicationRepo

func NewMediaRepo(db *gorm.DB, baseLog *logger.Logger) MediaRepo {
	return media.NewMediaRepo(db, baseLog)
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	return post.NewPostRepo(db, baseLog)
}

func NewPublicationRepo(db *gorm.DB, baseLog *logger.Logger) PublicationRepo {
	return publication.NewPublicationRepo(db, baseLog)
}
