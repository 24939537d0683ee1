package models

import "time"

// PageView append-only analytics event, one row per article view.
// Rows are inserted by the worker and never updated.
type PageView struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ArticleID uint      `gorm:"index;not null" json:"article_id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	Referrer  string    `json:"referrer"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Device    string    `json:"device"` // mobile, desktop, tablet
	SessionID string    `gorm:"index" json:"session_id"`
	ViewedAt  time.Time `gorm:"index" json:"viewed_at"`
}

// TableName table name override
func (PageView) TableName() string {
	return "page_views"
}
