package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/publisher-backend/internal/data/repos"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type Repos struct {
	Media       repos.MediaRepo
	Post        repos.PostRepo
	Publication repos.PublicationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Media:       repos.NewMediaRepo(db, log),
		Post:        repos.NewPostRepo(db, log),
		Publication: repos.NewPublicationRepo(db, log),
	}
}
