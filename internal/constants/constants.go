package constants

// Service identity reported on the root endpoint
const (
	AppName    = "khoborpatra"
	AppVersion = "1.0.0"
)

// Article status constants
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusReview    = "review"
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

// Article statuses accepted on create/update
var ArticleStatuses = []string{
	ArticleStatusDraft,
	ArticleStatusReview,
	ArticleStatusPublished,
	ArticleStatusArchived,
}

// User role constants
const (
	UserRoleAdmin       = "admin"
	UserRoleEditor      = "editor"
	UserRoleReporter    = "reporter"
	UserRoleContributor = "contributor"
)

// User roles accepted on create/update
var UserRoles = []string{
	UserRoleAdmin,
	UserRoleEditor,
	UserRoleReporter,
	UserRoleContributor,
}

// Comment moderation action constants
const (
	ModerationActionApprove = "approve"
	ModerationActionReject  = "reject"
)

// Article sort constants
const (
	SortByPublishedAt = "published_at"
	SortByViewCount   = "view_count"
	SortByCreatedAt   = "created_at"
	SortByPriority    = "priority"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Columns allowed in article list ORDER BY clauses
var AllowedSortColumns = []string{
	SortByPublishedAt,
	SortByViewCount,
	SortByCreatedAt,
	SortByPriority,
}

// Pagination constants
const (
	DefaultPage     = 1
	DefaultLimit    = 10
	MaxLimit        = 100
	MaxReplyFetch   = 500
	DefaultPriority = 5
)

// Advertisement position constants
const (
	AdPositionHeader  = "header"
	AdPositionSidebar = "sidebar"
	AdPositionInline  = "inline"
	AdPositionFooter  = "footer"
)

// Queue constants
const (
	QueueDefault        = "default"
	TaskArticleView     = "article:view"
	TaskCommentCounters = "comment:recount"
)

// Cache constants
const (
	RedisPrefixDefault = "kp"
)

// Site locale constants
const (
	LocaleEn = "en"
	LocaleBn = "bn"
)

// Supported site locales in fallback order
var SupportedLocales = []string{LocaleEn, LocaleBn}
