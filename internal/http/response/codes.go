package response

import "net/http"

// HTTP statuses used across handlers. Unauthorized and Forbidden are part
// of the envelope vocabulary but no current route emits them.
const (
	StatusOK              = http.StatusOK
	StatusCreated         = http.StatusCreated
	StatusBadRequest      = http.StatusBadRequest
	StatusUnauthorized    = http.StatusUnauthorized
	StatusForbidden       = http.StatusForbidden
	StatusNotFound        = http.StatusNotFound
	StatusConflict        = http.StatusConflict
	StatusTooManyRequests = http.StatusTooManyRequests
	StatusInternal        = http.StatusInternalServerError
	StatusUnavailable     = http.StatusServiceUnavailable
)
