package services

import (
	"context"

	types "github.com/yungbote/publisher-backend/internal/domain"
	"github.com/yungbote/publisher-backend/internal/observability"
	"github.com/yungbote/publisher-backend/internal/platform/apierr"
	"github.com/yungbote/publisher-backend/internal/platform/dbctx"
)

const (
	CodeMediaConflict       = "media_conflict"
	CodeMediaNotFound       = "media_not_found"
	CodeMediaInUse          = "media_in_use"
	CodePostNotFound        = "post_not_found"
	CodePostInUse           = "post_in_use"
	CodePublicationNotFound = "publication_not_found"
	CodePublicationElapsed  = "publication_elapsed"
	CodeMediaOrPostNotFound = "media_or_post_not_found"
)

// MediaLookup resolves a media outlet by id, failing with media_not_found.
type MediaLookup interface {
	Get(ctx context.Context, id uint) (*types.Media, error)
}

// PostLookup resolves a post by id, failing with post_not_found.
type PostLookup interface {
	Get(ctx context.Context, id uint) (*types.Post, error)
}

// PublicationReferences counts publications pointing at a media outlet or post.
type PublicationReferences interface {
	CountByMediaID(dbc dbctx.Context, mediaID uint) (int64, error)
	CountByPostID(dbc dbctx.Context, postID uint) (int64, error)
}

func reject(entity string, e *apierr.Error) *apierr.Error {
	observability.Current().IncRuleRejection(entity, e.Code)
	return e
}
