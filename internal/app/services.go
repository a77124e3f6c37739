package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/publisher-backend/internal/platform/logger"
	"github.com/yungbote/publisher-backend/internal/services"
)

type Services struct {
	Media       services.MediaService
	Post        services.PostService
	Publication services.PublicationService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	media := services.NewMediaService(db, log, reposet.Media, reposet.Publication, clients.LookupCache)
	post := services.NewPostService(db, log, reposet.Post, reposet.Publication, clients.LookupCache)
	return Services{
		Media:       media,
		Post:        post,
		Publication: services.NewPublicationService(db, log, reposet.Publication, media, post, nil),
	}
}
