package handlers

import (
	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/service"
)

var articleErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, status: response.StatusNotFound, key: "error.article_not_found"},
	{target: service.ErrSlugExists, status: response.StatusConflict, key: "error.slug_exists"},
	{target: service.ErrInvalidStatus, status: response.StatusBadRequest, key: "error.invalid_status"},
	{target: service.ErrCategoryNotFound, status: response.StatusBadRequest, key: "error.category_not_found"},
	{target: service.ErrUserNotFound, status: response.StatusBadRequest, key: "error.user_not_found"},
	{target: service.ErrUnknownTag, status: response.StatusBadRequest, key: "error.unknown_tag"},
}

var categoryErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, status: response.StatusNotFound, key: "error.category_not_found"},
	{target: service.ErrSlugExists, status: response.StatusConflict, key: "error.slug_exists"},
	{target: service.ErrParentCategoryNotFound, status: response.StatusBadRequest, key: "error.parent_category_not_found"},
	{target: service.ErrSelfParent, status: response.StatusBadRequest, key: "error.self_parent"},
	{target: service.ErrCategoryHasArticles, status: response.StatusConflict, key: "error.category_has_articles"},
	{target: service.ErrCategoryHasChildren, status: response.StatusConflict, key: "error.category_has_children"},
}

var tagErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, status: response.StatusNotFound, key: "error.tag_not_found"},
	{target: service.ErrSlugExists, status: response.StatusConflict, key: "error.slug_exists"},
	{target: service.ErrTagInUse, status: response.StatusConflict, key: "error.tag_in_use"},
}

var commentErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, status: response.StatusNotFound, key: "error.comment_not_found"},
	{target: service.ErrParentCommentNotFound, status: response.StatusBadRequest, key: "error.parent_comment_not_found"},
	{target: service.ErrParentCommentMismatch, status: response.StatusBadRequest, key: "error.parent_comment_mismatch"},
	{target: service.ErrReplyDepthExceeded, status: response.StatusBadRequest, key: "error.reply_depth_exceeded"},
	{target: service.ErrInvalidModerationAction, status: response.StatusBadRequest, key: "error.invalid_moderation_action"},
}

var userErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, status: response.StatusNotFound, key: "error.user_not_found"},
	{target: service.ErrEmailExists, status: response.StatusConflict, key: "error.email_exists"},
	{target: service.ErrInvalidRole, status: response.StatusBadRequest, key: "error.invalid_role"},
	{target: service.ErrUserHasArticles, status: response.StatusConflict, key: "error.user_has_articles"},
}

var newsletterErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, status: response.StatusNotFound, key: "error.not_found"},
}

var advertisementErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, status: response.StatusNotFound, key: "error.not_found"},
}
