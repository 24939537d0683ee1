package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by services. Handlers map these onto HTTP
// statuses and localized messages.
var (
	ErrNotFound                = errors.New("resource not found")
	ErrSlugExists              = errors.New("slug already exists")
	ErrEmailExists             = errors.New("email already exists")
	ErrTagNameExists           = errors.New("tag name already exists")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrCategoryHasArticles     = errors.New("category still has articles")
	ErrCategoryHasChildren     = errors.New("category still has child categories")
	ErrParentCategoryNotFound  = errors.New("parent category not found")
	ErrSelfParent              = errors.New("category cannot be its own parent")
	ErrTagInUse                = errors.New("tag is attached to articles")
	ErrUnknownTag              = errors.New("unknown tag id")
	ErrUserNotFound            = errors.New("user not found")
	ErrUserHasArticles         = errors.New("user is credited on articles")
	ErrInvalidStatus           = errors.New("invalid article status")
	ErrInvalidRole             = errors.New("invalid user role")
	ErrInvalidModerationAction = errors.New("invalid moderation action")
	ErrParentCommentNotFound   = errors.New("parent comment not found")
	ErrParentCommentMismatch   = errors.New("parent comment belongs to another article")
	ErrReplyDepthExceeded      = errors.New("replies cannot be nested")
)

// FieldError one field-level validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in one request payload.
type ValidationError struct {
	Fields []FieldError
}

// Error implements error
func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// fieldCollector accumulates violations across checks.
type fieldCollector struct {
	fields []FieldError
}

func (c *fieldCollector) add(field, message string) {
	c.fields = append(c.fields, FieldError{Field: field, Message: message})
}

func (c *fieldCollector) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}
