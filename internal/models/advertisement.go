package models

import "time"

// Advertisement banner placement row.
type Advertisement struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	ClickURL    string     `gorm:"not null" json:"click_url"`
	Position    string     `gorm:"not null;index" json:"position"` // header, sidebar, content, footer
	IsActive    bool       `gorm:"default:true;index" json:"is_active"`
	Impressions int        `gorm:"default:0" json:"impressions"`
	Clicks      int        `gorm:"default:0" json:"clicks"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName table name override
func (Advertisement) TableName() string {
	return "advertisements"
}
