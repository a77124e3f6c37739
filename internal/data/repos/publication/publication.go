package publication

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/publisher-backend/internal/domain"
	"github.com/yungbote/publisher-backend/internal/platform/dbctx"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type PublicationRepo interface {
	Create(dbc dbctx.Context, publications []*types.Publication) ([]*types.Publication, error)
	List(dbc dbctx.Context) ([]*types.Publication, error)
	ListBefore(dbc dbctx.Context, t time.Time) ([]*types.Publication, error)
	ListAfter(dbc dbctx.Context, t time.Time) ([]*types.Publication, error)
	GetByIDs(dbc dbctx.Context, publicationIDs []uint) ([]*types.Publication, error)
	CountByMediaID(dbc dbctx.Context, mediaID uint) (int64, error)
	CountByPostID(dbc dbctx.Context, postID uint) (int64, error)
	Update(dbc dbctx.Context, publicationID, mediaID, postID uint, date time.Time) error
	FullDeleteByIDs(dbc dbctx.Context, publicationIDs []uint) error
}

type publicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPublicationRepo(db *gorm.DB, baseLog *logger.Logger) PublicationRepo {
	repoLog := baseLog.With("repo", "PublicationRepo")
	return &publicationRepo{db: db, log: repoLog}
}

func (pr *publicationRepo) Create(dbc dbctx.Context, publications []*types.Publication) ([]*types.Publication, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(publications) == 0 {
		return []*types.Publication{}, nil
	}
	for _, p := range publications {
		if p != nil {
			p.Date = p.Date.UTC()
		}
	}

	if err := transaction.WithContext(dbc.Ctx).
		Omit(clause.Associations).
		Create(&publications).Error; err != nil {
		return nil, err
	}
	return publications, nil
}

func (pr *publicationRepo) List(dbc dbctx.Context) ([]*types.Publication, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Publication{}
	if err := transaction.WithContext(dbc.Ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListBefore returns rows whose date is strictly before t.
func (pr *publicationRepo) ListBefore(dbc dbctx.Context, t time.Time) ([]*types.Publication, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Publication{}
	if err := transaction.WithContext(dbc.Ctx).
		Where(clause.Lt{Column: clause.Column{Name: "date"}, Value: t.UTC()}).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListAfter returns rows whose date is strictly after t.
func (pr *publicationRepo) ListAfter(dbc dbctx.Context, t time.Time) ([]*types.Publication, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Publication{}
	if err := transaction.WithContext(dbc.Ctx).
		Where(clause.Gt{Column: clause.Column{Name: "date"}, Value: t.UTC()}).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *publicationRepo) GetByIDs(dbc dbctx.Context, publicationIDs []uint) ([]*types.Publication, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Publication

	if len(publicationIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", publicationIDs).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *publicationRepo) CountByMediaID(dbc dbctx.Context, mediaID uint) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Publication{}).
		Where("media_id = ?", mediaID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *publicationRepo) CountByPostID(dbc dbctx.Context, postID uint) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Publication{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *publicationRepo) Update(dbc dbctx.Context, publicationID, mediaID, postID uint, date time.Time) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Publication{}).
		Where("id = ?", publicationID).
		Updates(map[string]any{
			"media_id": mediaID,
			"post_id":  postID,
			"date":     date.UTC(),
		}).Error
}

func (pr *publicationRepo) FullDeleteByIDs(dbc dbctx.Context, publicationIDs []uint) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(publicationIDs) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Where("id IN ?", publicationIDs).
		Delete(&types.Publication{}).Error
}
