package media

import (
	"gorm.io/gorm"

	types "github.com/yungbote/publisher-backend/internal/domain"
	"github.com/yungbote/publisher-backend/internal/platform/dbctx"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type MediaRepo interface {
	Create(dbc dbctx.Context, medias []*types.Media) ([]*types.Media, error)
	List(dbc dbctx.Context) ([]*types.Media, error)
	GetByIDs(dbc dbctx.Context, mediaIDs []uint) ([]*types.Media, error)
	TitleUsernameExists(dbc dbctx.Context, title, username string) (bool, error)
	Update(dbc dbctx.Context, mediaID uint, title, username string) error
	FullDeleteByIDs(dbc dbctx.Context, mediaIDs []uint) error
}

type mediaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMediaRepo(db *gorm.DB, baseLog *logger.Logger) MediaRepo {
	repoLog := baseLog.With("repo", "MediaRepo")
	return &mediaRepo{db: db, log: repoLog}
}

func (mr *mediaRepo) Create(dbc dbctx.Context, medias []*types.Media) ([]*types.Media, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(medias) == 0 {
		return []*types.Media{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&medias).Error; err != nil {
		return nil, err
	}

	return medias, nil
}

func (mr *mediaRepo) List(dbc dbctx.Context) ([]*types.Media, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	results := []*types.Media{}
	if err := transaction.WithContext(dbc.Ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *mediaRepo) GetByIDs(dbc dbctx.Context, mediaIDs []uint) ([]*types.Media, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Media

	if len(mediaIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", mediaIDs).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *mediaRepo) TitleUsernameExists(dbc dbctx.Context, title, username string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64

	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Media{}).
		Where("title = ? AND username = ?", title, username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (mr *mediaRepo) Update(dbc dbctx.Context, mediaID uint, title, username string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Media{}).
		Where("id = ?", mediaID).
		Updates(map[string]any{
			"title":    title,
			"username": username,
		}).Error
}

func (mr *mediaRepo) FullDeleteByIDs(dbc dbctx.Context, mediaIDs []uint) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(mediaIDs) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Where("id IN ?", mediaIDs).
		Delete(&types.Media{}).Error
}
