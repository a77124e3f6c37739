package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/publisher-backend/internal/clients/redis"
	"github.com/yungbote/publisher-backend/internal/data/db"
	"github.com/yungbote/publisher-backend/internal/data/repos"
	types "github.com/yungbote/publisher-backend/internal/domain"
	"github.com/yungbote/publisher-backend/internal/platform/apierr"
	"github.com/yungbote/publisher-backend/internal/platform/ctxutil"
	"github.com/yungbote/publisher-backend/internal/platform/dbctx"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

// PostService stores posts. Callers project rows through types.NewPostView
// before exposing them so a NULL image never appears in output.
type PostService interface {
	PostLookup
	Create(ctx context.Context, title, text string, image *string) (*types.Post, error)
	List(ctx context.Context) ([]*types.Post, error)
	Update(ctx context.Context, id uint, title, text string, image *string) (*types.Post, error)
	Remove(ctx context.Context, id uint) (*types.Post, error)
}

type postService struct {
	tx       db.TxRunner
	log      *logger.Logger
	postRepo repos.PostRepo
	refs     PublicationReferences
	loader   *redis.Loader[types.Post]
}

func NewPostService(conn *gorm.DB, log *logger.Logger, postRepo repos.PostRepo, refs PublicationReferences, cache redis.LookupCache) PostService {
	serviceLog := log.With("service", "PostService")
	return &postService{
		tx:       db.NewGormTxRunner(conn),
		log:      serviceLog,
		postRepo: postRepo,
		refs:     refs,
		loader:   redis.NewLoader[types.Post](cache, serviceLog, "post"),
	}
}

func (ps *postService) Create(ctx context.Context, title, text string, image *string) (*types.Post, error) {
	created, err := ps.postRepo.Create(dbctx.From(ctx), []*types.Post{{Title: title, Text: text, Image: image}})
	if err != nil {
		ps.log.Warn("post insert failed", append(ctxutil.LogFields(ctx), "error", err)...)
		return nil, fmt.Errorf("create post: %w", err)
	}
	ps.log.Debug("post created", append(ctxutil.LogFields(ctx), "post_id", created[0].ID)...)
	return created[0], nil
}

func (ps *postService) List(ctx context.Context) ([]*types.Post, error) {
	rows, err := ps.postRepo.List(dbctx.From(ctx))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return rows, nil
}

func (ps *postService) Get(ctx context.Context, id uint) (*types.Post, error) {
	return ps.loader.Load(ctx, id, func(ctx context.Context) (*types.Post, error) {
		return ps.fetch(dbctx.From(ctx), id)
	})
}

// Update replaces title and text. A nil image keeps the stored one.
func (ps *postService) Update(ctx context.Context, id uint, title, text string, image *string) (*types.Post, error) {
	var updated *types.Post
	err := ps.tx.InTx(ctx, func(inner dbctx.Context) error {
		if _, err := ps.fetch(inner, id); err != nil {
			return err
		}
		if err := ps.postRepo.Update(inner, id, title, text, image); err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		row, err := ps.fetch(inner, id)
		if err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	ps.loader.Forget(ctx, id)
	return updated, nil
}

func (ps *postService) Remove(ctx context.Context, id uint) (*types.Post, error) {
	var removed *types.Post
	err := ps.tx.InTx(ctx, func(inner dbctx.Context) error {
		row, err := ps.fetch(inner, id)
		if err != nil {
			return err
		}
		n, err := ps.refs.CountByPostID(inner, id)
		if err != nil {
			return fmt.Errorf("count post references: %w", err)
		}
		if n > 0 {
			return ps.inUse(id)
		}
		if err := ps.postRepo.FullDeleteByIDs(inner, []uint{id}); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ps.inUse(id)
			}
			return fmt.Errorf("delete post: %w", err)
		}
		removed = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	ps.loader.Forget(ctx, id)
	ps.log.Debug("post removed", append(ctxutil.LogFields(ctx), "post_id", id)...)
	return removed, nil
}

func (ps *postService) fetch(dbc dbctx.Context, id uint) (*types.Post, error) {
	rows, err := ps.postRepo.GetByIDs(dbc, []uint{id})
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if len(rows) == 0 || rows[0] == nil {
		return nil, reject("post", apierr.NotFound(CodePostNotFound, "post %d not found", id))
	}
	return rows[0], nil
}

func (ps *postService) inUse(id uint) *apierr.Error {
	return reject("post", apierr.Forbidden(CodePostInUse, "post %d is referenced by a publication", id))
}
