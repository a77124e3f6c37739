package post

type Post struct {
	ID    uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title string  `gorm:"not null;column:title" json:"title"`
	Text  string  `gorm:"not null;column:text" json:"text"`
	Image *string `gorm:"column:image" json:"image"`
}

func (Post) TableName() string { return "post" }

// PostView is the outward shape of a Post. A NULL image drops the key, an
// empty string is still emitted.
type PostView struct {
	ID    uint    `json:"id"`
	Title string  `json:"title"`
	Text  string  `json:"text"`
	Image *string `json:"image,omitempty"`
}

func NewPostView(p *Post) *PostView {
	if p == nil {
		return nil
	}
	v := &PostView{ID: p.ID, Title: p.Title, Text: p.Text}
	if p.Image != nil {
		img := *p.Image
		v.Image = &img
	}
	return v
}

func NewPostViews(posts []*Post) []*PostView {
	out := make([]*PostView, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		out = append(out, NewPostView(p))
	}
	return out
}
