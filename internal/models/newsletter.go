package models

import "time"

// Newsletter subscription row. Preferences holds the category slugs the
// subscriber wants digests for.
type Newsletter struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Name           string     `json:"name"`
	Preferences    JSON       `gorm:"type:json" json:"preferences"`
	IsActive       bool       `gorm:"default:true;index" json:"is_active"`
	VerifiedAt     *time.Time `json:"verified_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TableName table name override
func (Newsletter) TableName() string {
	return "newsletters"
}
