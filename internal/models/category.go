package models

import "time"

// Category section tree node. ParentID is nullable; the tree is assembled
// in memory, never via recursive queries.
type Category struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null;index" json:"name"`
	NameBn       string    `gorm:"not null" json:"name_bn"`
	Slug         string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description  string    `json:"description"`
	ParentID     *uint     `gorm:"index" json:"parent_id"`
	DisplayOrder int       `gorm:"default:0;index" json:"display_order"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Parent   *Category   `gorm:"-" json:"parent,omitempty"`
	Children []*Category `gorm:"-" json:"children,omitempty"`
}

// TableName table name override
func (Category) TableName() string {
	return "categories"
}
