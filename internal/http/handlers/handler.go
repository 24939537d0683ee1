package handlers

import "github.com/khoborpatra/khoborpatra/internal/provider"

// Handler API handler entry point, one instance serves every route.
type Handler struct {
	*provider.Container
}

// New creates the handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
