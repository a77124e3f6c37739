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

type MediaService interface {
	MediaLookup
	Create(ctx context.Context, title, username string) (*types.Media, error)
	List(ctx context.Context) ([]*types.Media, error)
	Update(ctx context.Context, id uint, title, username string) (*types.Media, error)
	Remove(ctx context.Context, id uint) (*types.Media, error)
}

type mediaService struct {
	tx        db.TxRunner
	log       *logger.Logger
	mediaRepo repos.MediaRepo
	refs      PublicationReferences
	loader    *redis.Loader[types.Media]
}

func NewMediaService(conn *gorm.DB, log *logger.Logger, mediaRepo repos.MediaRepo, refs PublicationReferences, cache redis.LookupCache) MediaService {
	serviceLog := log.With("service", "MediaService")
	return &mediaService{
		tx:        db.NewGormTxRunner(conn),
		log:       serviceLog,
		mediaRepo: mediaRepo,
		refs:      refs,
		loader:    redis.NewLoader[types.Media](cache, serviceLog, "media"),
	}
}

func (ms *mediaService) Create(ctx context.Context, title, username string) (*types.Media, error) {
	dbc := dbctx.From(ctx)
	exists, err := ms.mediaRepo.TitleUsernameExists(dbc, title, username)
	if err != nil {
		return nil, fmt.Errorf("check media uniqueness: %w", err)
	}
	if exists {
		return nil, ms.conflict(title, username)
	}

	created, err := ms.mediaRepo.Create(dbc, []*types.Media{{Title: title, Username: username}})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ms.conflict(title, username)
	}
	if err != nil {
		ms.log.Warn("media insert failed", append(ctxutil.LogFields(ctx), "error", err)...)
		return nil, fmt.Errorf("create media: %w", err)
	}
	ms.log.Debug("media created", append(ctxutil.LogFields(ctx), "media_id", created[0].ID)...)
	return created[0], nil
}

func (ms *mediaService) List(ctx context.Context) ([]*types.Media, error) {
	rows, err := ms.mediaRepo.List(dbctx.From(ctx))
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return rows, nil
}

func (ms *mediaService) Get(ctx context.Context, id uint) (*types.Media, error) {
	return ms.loader.Load(ctx, id, func(ctx context.Context) (*types.Media, error) {
		return ms.fetch(dbctx.From(ctx), id)
	})
}

func (ms *mediaService) Update(ctx context.Context, id uint, title, username string) (*types.Media, error) {
	var updated *types.Media
	err := ms.tx.InTx(ctx, func(inner dbctx.Context) error {
		if _, err := ms.fetch(inner, id); err != nil {
			return err
		}
		// The pair is checked against every row, the target included.
		exists, err := ms.mediaRepo.TitleUsernameExists(inner, title, username)
		if err != nil {
			return fmt.Errorf("check media uniqueness: %w", err)
		}
		if exists {
			return ms.conflict(title, username)
		}
		if err := ms.mediaRepo.Update(inner, id, title, username); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ms.conflict(title, username)
			}
			return fmt.Errorf("update media: %w", err)
		}
		row, err := ms.fetch(inner, id)
		if err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	ms.loader.Forget(ctx, id)
	return updated, nil
}

func (ms *mediaService) Remove(ctx context.Context, id uint) (*types.Media, error) {
	var removed *types.Media
	err := ms.tx.InTx(ctx, func(inner dbctx.Context) error {
		row, err := ms.fetch(inner, id)
		if err != nil {
			return err
		}
		n, err := ms.refs.CountByMediaID(inner, id)
		if err != nil {
			return fmt.Errorf("count media references: %w", err)
		}
		if n > 0 {
			return ms.inUse(id)
		}
		if err := ms.mediaRepo.FullDeleteByIDs(inner, []uint{id}); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ms.inUse(id)
			}
			return fmt.Errorf("delete media: %w", err)
		}
		removed = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	ms.loader.Forget(ctx, id)
	ms.log.Debug("media removed", append(ctxutil.LogFields(ctx), "media_id", id)...)
	return removed, nil
}

func (ms *mediaService) fetch(dbc dbctx.Context, id uint) (*types.Media, error) {
	rows, err := ms.mediaRepo.GetByIDs(dbc, []uint{id})
	if err != nil {
		return nil, fmt.Errorf("get media: %w", err)
	}
	if len(rows) == 0 || rows[0] == nil {
		return nil, reject("media", apierr.NotFound(CodeMediaNotFound, "media %d not found", id))
	}
	return rows[0], nil
}

func (ms *mediaService) conflict(title, username string) *apierr.Error {
	return reject("media", apierr.Conflict(CodeMediaConflict, "media with title %q and username %q already exists", title, username))
}

func (ms *mediaService) inUse(id uint) *apierr.Error {
	return reject("media", apierr.Forbidden(CodeMediaInUse, "media %d is referenced by a publication", id))
}
