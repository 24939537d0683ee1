package repository

import (
	"github.com/khoborpatra/khoborpatra/internal/constants"

	"gorm.io/gorm"
)

// NormalizePagination clamps page to >= 1 and limit to [1, MaxLimit],
// substituting defaults for zero values.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit <= 0 {
		limit = constants.DefaultLimit
	}
	if limit > constants.MaxLimit {
		limit = constants.MaxLimit
	}
	return page, limit
}

// applyPagination applies LIMIT/OFFSET, guarding against bad page numbers.
func applyPagination(query *gorm.DB, page, limit int) *gorm.DB {
	if query == nil || limit <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}
