package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/publisher-backend/internal/data/db"
	"github.com/yungbote/publisher-backend/internal/data/repos"
	types "github.com/yungbote/publisher-backend/internal/domain"
	"github.com/yungbote/publisher-backend/internal/platform/apierr"
	"github.com/yungbote/publisher-backend/internal/platform/ctxutil"
	"github.com/yungbote/publisher-backend/internal/platform/dbctx"
	"github.com/yungbote/publisher-backend/internal/platform/logger"
)

type PublicationService interface {
	Create(ctx context.Context, mediaID, postID uint, date time.Time) (*types.Publication, error)
	List(ctx context.Context, filter types.PublicationFilter) ([]*types.Publication, error)
	Get(ctx context.Context, id uint) (*types.Publication, error)
	Update(ctx context.Context, id, mediaID, postID uint, date time.Time) (*types.Publication, error)
	Remove(ctx context.Context, id uint) (*types.Publication, error)
}

type publicationService struct {
	tx              db.TxRunner
	log             *logger.Logger
	publicationRepo repos.PublicationRepo
	medias          MediaLookup
	posts           PostLookup
	now             func() time.Time
}

// NewPublicationService wires publication rules. now defaults to time.Now.
func NewPublicationService(conn *gorm.DB, log *logger.Logger, publicationRepo repos.PublicationRepo, medias MediaLookup, posts PostLookup, now func() time.Time) PublicationService {
	if now == nil {
		now = time.Now
	}
	return &publicationService{
		tx:              db.NewGormTxRunner(conn),
		log:             log.With("service", "PublicationService"),
		publicationRepo: publicationRepo,
		medias:          medias,
		posts:           posts,
		now:             now,
	}
}

func (ps *publicationService) Create(ctx context.Context, mediaID, postID uint, date time.Time) (*types.Publication, error) {
	if err := ps.checkRefs(ctx, mediaID, postID); err != nil {
		return nil, err
	}
	created, err := ps.publicationRepo.Create(dbctx.From(ctx), []*types.Publication{{
		MediaID: mediaID,
		PostID:  postID,
		Date:    date,
	}})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ps.danglingRef(mediaID, postID)
		}
		ps.log.Warn("publication insert failed", append(ctxutil.LogFields(ctx), "error", err)...)
		return nil, fmt.Errorf("create publication: %w", err)
	}
	ps.log.Debug("publication created", append(ctxutil.LogFields(ctx), "publication_id", created[0].ID)...)
	return created[0], nil
}

// List applies at most one filter: Published wins over After.
func (ps *publicationService) List(ctx context.Context, filter types.PublicationFilter) ([]*types.Publication, error) {
	dbc := dbctx.From(ctx)
	var (
		rows []*types.Publication
		err  error
	)
	switch {
	case filter.Published:
		rows, err = ps.publicationRepo.ListBefore(dbc, ps.now())
	case filter.After != nil:
		rows, err = ps.publicationRepo.ListAfter(dbc, *filter.After)
	default:
		rows, err = ps.publicationRepo.List(dbc)
	}
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}
	return rows, nil
}

func (ps *publicationService) Get(ctx context.Context, id uint) (*types.Publication, error) {
	return ps.fetch(dbctx.From(ctx), id)
}

// Update refuses to touch a publication whose date has already passed.
func (ps *publicationService) Update(ctx context.Context, id, mediaID, postID uint, date time.Time) (*types.Publication, error) {
	existing, err := ps.fetch(dbctx.From(ctx), id)
	if err != nil {
		return nil, err
	}
	if existing.Elapsed(ps.now()) {
		return nil, reject("publication", apierr.Forbidden(CodePublicationElapsed, "publication %d already went out", id))
	}
	if err := ps.checkRefs(ctx, mediaID, postID); err != nil {
		return nil, err
	}

	var updated *types.Publication
	err = ps.tx.InTx(ctx, func(inner dbctx.Context) error {
		if err := ps.publicationRepo.Update(inner, id, mediaID, postID, date); err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ps.danglingRef(mediaID, postID)
			}
			return fmt.Errorf("update publication: %w", err)
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
	return updated, nil
}

// Remove deletes regardless of date.
func (ps *publicationService) Remove(ctx context.Context, id uint) (*types.Publication, error) {
	var removed *types.Publication
	err := ps.tx.InTx(ctx, func(inner dbctx.Context) error {
		row, err := ps.fetch(inner, id)
		if err != nil {
			return err
		}
		if err := ps.publicationRepo.FullDeleteByIDs(inner, []uint{id}); err != nil {
			return fmt.Errorf("delete publication: %w", err)
		}
		removed = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	ps.log.Debug("publication removed", append(ctxutil.LogFields(ctx), "publication_id", id)...)
	return removed, nil
}

// checkRefs resolves the media outlet first, then the post. Lookup errors
// are returned as-is.
func (ps *publicationService) checkRefs(ctx context.Context, mediaID, postID uint) error {
	if _, err := ps.medias.Get(ctx, mediaID); err != nil {
		return err
	}
	if _, err := ps.posts.Get(ctx, postID); err != nil {
		return err
	}
	return nil
}

func (ps *publicationService) fetch(dbc dbctx.Context, id uint) (*types.Publication, error) {
	rows, err := ps.publicationRepo.GetByIDs(dbc, []uint{id})
	if err != nil {
		return nil, fmt.Errorf("get publication: %w", err)
	}
	if len(rows) == 0 || rows[0] == nil {
		return nil, reject("publication", apierr.NotFound(CodePublicationNotFound, "publication %d not found", id))
	}
	return rows[0], nil
}

func (ps *publicationService) danglingRef(mediaID, postID uint) *apierr.Error {
	return reject("publication", apierr.NotFound(CodeMediaOrPostNotFound, "media %d or post %d no longer exists", mediaID, postID))
}
