package handlers

import (
	"errors"
	"strings"

	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/i18n"
	"github.com/khoborpatra/khoborpatra/internal/logger"
	"github.com/khoborpatra/khoborpatra/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// requestLog returns a logger carrying the request id.
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// respondError localizes the message key and writes the error envelope.
// Server-side errors are logged with the request id.
func respondError(c *gin.Context, status int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	if err != nil {
		requestLog(c).Errorw("handler_error",
			"status", status,
			"message", msg,
			"error", err,
		)
	}
	response.Fail(c, status, msg)
}

// respondValidation writes a 400 with the collected field errors.
func respondValidation(c *gin.Context, ve *service.ValidationError) {
	locale := i18n.ResolveLocale(c)
	response.FailWithErrors(c, response.StatusBadRequest, i18n.T(locale, "error.validation_failed"), ve.Fields)
}

// mappedHandlerError maps one service sentinel onto a status and key.
type mappedHandlerError struct {
	target error
	status int
	key    string
}

// respondWithMappedError walks the rule table; a validation error beats
// it, a database constraint violation answers 409/400, and anything
// unmatched is an internal error.
func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackKey string) {
	if ve, ok := service.AsValidationError(err); ok {
		respondValidation(c, ve)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.status, rule.key, nil)
			return
		}
	}
	if status, key, ok := constraintErrorStatus(err); ok {
		respondError(c, status, key, err)
		return
	}
	respondError(c, response.StatusInternal, fallbackKey, err)
}

// constraintErrorStatus maps unique and foreign-key violations onto
// client statuses. The uniqueness pre-checks race with concurrent
// writes; the loser of that race lands here instead of a 500.
func constraintErrorStatus(err error) (int, string, bool) {
	if err == nil {
		return 0, "", false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return response.StatusConflict, "error.duplicate_entry", true
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return response.StatusBadRequest, "error.invalid_reference", true
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value violates unique constraint"):
		return response.StatusConflict, "error.duplicate_entry", true
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "violates foreign key constraint"):
		return response.StatusBadRequest, "error.invalid_reference", true
	}
	return 0, "", false
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
