package publication

import (
	"time"

	"github.com/yungbote/publisher-backend/internal/domain/media"
	"github.com/yungbote/publisher-backend/internal/domain/post"
)

// Publication records media outlet MediaID running post PostID on Date.
// Rows referencing a media or post block deletion of that row.
type Publication struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MediaID uint      `gorm:"not null;index;column:media_id" json:"mediaId"`
	PostID  uint      `gorm:"not null;index;column:post_id" json:"postId"`
	Date    time.Time `gorm:"not null;index;column:date" json:"date"`

	Media *media.Media `gorm:"foreignKey:MediaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Post  *post.Post   `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Publication) TableName() string { return "publication" }

// Elapsed reports whether the publication date is strictly before now.
func (p *Publication) Elapsed(now time.Time) bool {
	return p.Date.Before(now)
}

// Filter selects publications for listing. Published takes precedence over After.
type Filter struct {
	Published bool
	After     *time.Time
}
