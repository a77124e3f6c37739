package post

import (
	"gorm.io/gorm"

	types "github.com/yungbote/publisher-backend/internal/domain"
	"github.com/yungbote/publisher-backend/internal/platform/dbctx"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type PostRepo interface {
	Create(dbc dbctx.Context, posts []*types.Post) ([]*types.Post, error)
	List(dbc dbctx.Context) ([]*types.Post, error)
	GetByIDs(dbc dbctx.Context, postIDs []uint) ([]*types.Post, error)
	Update(dbc dbctx.Context, postID uint, title, text string, image *string) error
	FullDeleteByIDs(dbc dbctx.Context, postIDs []uint) error
}

type postRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	repoLog := baseLog.With("repo", "PostRepo")
	return &postRepo{db: db, log: repoLog}
}

func (pr *postRepo) Create(dbc dbctx.Context, posts []*types.Post) ([]*types.Post, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(posts) == 0 {
		return []*types.Post{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (pr *postRepo) List(dbc dbctx.Context) ([]*types.Post, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	results := []*types.Post{}
	if err := transaction.WithContext(dbc.Ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *postRepo) GetByIDs(dbc dbctx.Context, postIDs []uint) ([]*types.Post, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Post

	if len(postIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", postIDs).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Update sets title and text. A nil image leaves the stored one untouched.
func (pr *postRepo) Update(dbc dbctx.Context, postID uint, title, text string, image *string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}
	updates := map[string]any{
		"title": title,
		"text":  text,
	}
	if image != nil {
		updates["image"] = *image
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Post{}).
		Where("id = ?", postID).
		Updates(updates).Error
}

func (pr *postRepo) FullDeleteByIDs(dbc dbctx.Context, postIDs []uint) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(postIDs) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Where("id IN ?", postIDs).
		Delete(&types.Post{}).Error
}
