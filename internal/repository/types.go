package repository

import "time"

// ArticleListFilter filter set for article list queries. Nil pointer
// fields mean "no constraint"; false is a real constraint.
type ArticleListFilter struct {
	Page        int
	Limit       int
	Query       string
	CategoryID  uint
	AuthorID    uint
	Status      string
	IsPublished *bool
	IsFeatured  *bool
	IsBreaking  *bool
	DateFrom    *time.Time
	DateTo      *time.Time
	TagIDs      []uint
	SortBy      string
	SortOrder   string
}

// CommentListFilter filter set for admin comment list queries.
type CommentListFilter struct {
	Page       int
	Limit      int
	ArticleID  uint
	IsApproved *bool
	IsReported *bool
	SortBy     string
	SortOrder  string
}

// TagListFilter filter set for tag list queries.
type TagListFilter struct {
	Page       int
	Limit      int
	Search     string
	OnlyActive bool
	SortBy     string
	SortOrder  string
}

// UserListFilter filter set for user list queries.
type UserListFilter struct {
	Page     int
	Limit    int
	Search   string
	Role     string
	IsActive *bool
}

// AdvertisementListFilter filter set for advertisement queries.
type AdvertisementListFilter struct {
	Position   string
	OnlyActive bool
	At         *time.Time
}
