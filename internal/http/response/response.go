package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope uniform response body
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta pagination block
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewMeta derives totalPages from total and limit
func NewMeta(page, limit int, total int64) Meta {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// OK 200 response
func OK(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// Created 201 response
func Created(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// Paginated 200 response with a meta block
func Paginated(c *gin.Context, msg string, data interface{}, meta Meta) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: msg,
		Data:    data,
		Meta:    &meta,
	})
}

// Fail error response with a real HTTP status
func Fail(c *gin.Context, status int, msg string) {
	FailWithErrors(c, status, msg, nil)
}

// FailWithErrors error response carrying field-level details
func FailWithErrors(c *gin.Context, status int, msg string, errs interface{}) {
	c.JSON(status, Envelope{
		Success: false,
		Message: msg,
		Errors:  attachRequestID(c, errs),
	})
}

// attachRequestID folds the request id into the error payload so a
// reader can quote it back to support.
func attachRequestID(c *gin.Context, errs interface{}) interface{} {
	requestID := ""
	if c != nil {
		if value, ok := c.Get("request_id"); ok {
			if id, ok := value.(string); ok {
				requestID = id
			}
		}
	}
	if requestID == "" {
		return errs
	}
	if errs == nil {
		return gin.H{"request_id": requestID}
	}
	switch v := errs.(type) {
	case gin.H:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	case map[string]interface{}:
		if _, ok := v["request_id"]; !ok {
			v["request_id"] = requestID
		}
		return v
	default:
		return gin.H{
			"request_id": requestID,
			"details":    errs,
		}
	}
}
