package models

import "time"

// Tag flat label attached to articles through the article_tags junction.
type Tag struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	NameBn      string    `gorm:"uniqueIndex;not null" json:"name_bn"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `json:"description"`
	Color       string    `gorm:"default:#3B82F6" json:"color"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName table name override
func (Tag) TableName() string {
	return "tags"
}

// TagSummary reduced tag projection attached to article list items.
type TagSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
