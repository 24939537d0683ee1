package models

import "time"

// Article main news article row. English fields carry the canonical value,
// *_bn columns carry the Bengali variant.
type Article struct {
	ID uint `gorm:"primarykey" json:"id"`

	// Content
	Title     string `gorm:"not null" json:"title"`
	TitleBn   string `gorm:"not null" json:"title_bn"`
	Slug      string `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt   string `json:"excerpt"`
	ExcerptBn string `json:"excerpt_bn"`
	Content   string `gorm:"not null" json:"content"`
	ContentBn string `gorm:"not null" json:"content_bn"`

	// Media
	FeaturedImage  string `json:"featured_image"`
	ImageCaption   string `json:"image_caption"`
	ImageCaptionBn string `json:"image_caption_bn"`
	Gallery        JSON   `gorm:"type:json" json:"gallery"`

	// Relations
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	AuthorID   *uint     `gorm:"index" json:"author_id"`
	Author     *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	EditorID   *uint     `json:"editor_id"`
	Editor     *User     `gorm:"foreignKey:EditorID" json:"editor,omitempty"`

	// Publication state. Status is advisory; IsPublished gates public reads.
	Status      string     `gorm:"not null;default:draft;index" json:"status"`
	IsPublished bool       `gorm:"default:false;index:idx_articles_published" json:"is_published"`
	PublishedAt *time.Time `gorm:"index:idx_articles_published" json:"published_at"`
	ScheduledAt *time.Time `json:"scheduled_at"`

	// SEO
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	Keywords        string `json:"keywords"`

	// Engagement counters, server maintained, never decremented.
	ViewCount    int `gorm:"default:0" json:"view_count"`
	LikeCount    int `gorm:"default:0" json:"like_count"`
	ShareCount   int `gorm:"default:0" json:"share_count"`
	CommentCount int `gorm:"default:0" json:"comment_count"`

	// Placement
	IsFeatured bool `gorm:"default:false;index" json:"is_featured"`
	IsBreaking bool `gorm:"default:false;index" json:"is_breaking"`
	IsUrgent   bool `gorm:"default:false" json:"is_urgent"`
	Priority   int  `gorm:"default:5" json:"priority"` // 1-10

	// Provenance
	Location   string `json:"location"`
	LocationBn string `json:"location_bn"`
	Source     string `json:"source"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tags []Tag `gorm:"many2many:article_tags" json:"tags,omitempty"`
}

// TableName table name override
func (Article) TableName() string {
	return "articles"
}

// ArticleTag junction row between articles and tags.
// (article_id, tag_id) is unique; rows follow either parent on delete.
type ArticleTag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ArticleID uint      `gorm:"uniqueIndex:idx_article_tags_pair;index;not null" json:"article_id"`
	TagID     uint      `gorm:"uniqueIndex:idx_article_tags_pair;index;not null" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName table name override
func (ArticleTag) TableName() string {
	return "article_tags"
}
