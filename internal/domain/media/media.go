package media

// Media is a named outlet account. (Title, Username) is unique across the table.
type Media struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string `gorm:"not null;column:title;uniqueIndex:idx_media_title_username,priority:1" json:"title"`
	Username string `gorm:"not null;column:username;uniqueIndex:idx_media_title_username,priority:2" json:"username"`
}

func (Media) TableName() string { return "media" }
