package models

import "time"

// User author/editor/admin identity. Password never leaves the server;
// public reads go through PublicView.
type User struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Name        string     `gorm:"not null" json:"name"`
	NameBn      string     `json:"name_bn"`
	Bio         string     `json:"bio"`
	BioBn       string     `json:"bio_bn"`
	Avatar      string     `json:"avatar"`
	Role        string     `gorm:"not null;default:reporter;index" json:"role"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName table name override
func (User) TableName() string {
	return "users"
}

// UserPublic reduced projection of User safe for public payloads.
type UserPublic struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	NameBn    string    `json:"name_bn"`
	Bio       string    `json:"bio"`
	BioBn     string    `json:"bio_bn"`
	Avatar    string    `json:"avatar"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicView strips credential fields.
func (u *User) PublicView() UserPublic {
	return UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		NameBn:    u.NameBn,
		Bio:       u.Bio,
		BioBn:     u.BioBn,
		Avatar:    u.Avatar,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
