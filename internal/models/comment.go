package models

import "time"

// Comment reader comment on an article. ParentID supports one level of
// threaded replies. Moderation fields are written only by a moderation
// action; IsReported is orthogonal to approval.
type Comment struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	ArticleID uint  `gorm:"index;not null" json:"article_id"`
	ParentID  *uint `gorm:"index" json:"parent_id"`

	// Commenters are anonymous visitors, not Users.
	AuthorName   string `gorm:"not null" json:"author_name"`
	AuthorEmail  string `json:"author_email"`
	AuthorAvatar string `json:"author_avatar"`

	Content   string `gorm:"not null" json:"content"`
	ContentBn string `json:"content_bn"`

	IsApproved  bool       `gorm:"default:false;index" json:"is_approved"`
	IsReported  bool       `gorm:"default:false" json:"is_reported"`
	ModeratedBy *uint      `json:"moderated_by"`
	ModeratedAt *time.Time `json:"moderated_at"`

	LikeCount  int `gorm:"default:0" json:"like_count"`
	ReplyCount int `gorm:"default:0" json:"reply_count"`

	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Replies []*Comment `gorm:"-" json:"replies,omitempty"`
}

// TableName table name override
func (Comment) TableName() string {
	return "comments"
}
