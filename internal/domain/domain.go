package domain

import (
	"github.com/yungbote/publisher-backend/internal/domain/media"
	"github.com/yungbote/publisher-backend/internal/domain/post"
	"github.com/yungbote/publisher-backend/internal/domain/publication"
)

type Media = media.Media

type Post = post.Post
type PostView = post.PostView

type Publication = publication.Publication
type PublicationFilter = publication.Filter

var NewPostView = post.NewPostView
var NewPostViews = post.NewPostViews
