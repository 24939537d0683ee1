package handlers

import (
	"github.com/khoborpatra/khoborpatra/internal/http/response"
	"github.com/khoborpatra/khoborpatra/internal/i18n"
	"github.com/khoborpatra/khoborpatra/internal/repository"
	"github.com/khoborpatra/khoborpatra/internal/service"

	"github.com/gin-gonic/gin"
)

// userPayload create/update request body
type userPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	NameBn   string `json:"name_bn"`
	Bio      string `json:"bio"`
	BioBn    string `json:"bio_bn"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

func (p userPayload) toInput() service.UserInput {
	return service.UserInput{
		Email:    p.Email,
		Password: p.Password,
		Name:     p.Name,
		NameBn:   p.NameBn,
		Bio:      p.Bio,
		BioBn:    p.BioBn,
		Avatar:   p.Avatar,
		Role:     p.Role,
		IsActive: p.IsActive,
	}
}

// ListUsers GET /api/users
func (h *Handler) ListUsers(c *gin.Context) {
	page, limit := repository.NormalizePagination(queryInt(c, "page"), queryInt(c, "limit"))
	users, total, err := h.UserService.List(service.ListUsersInput{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Role:     c.Query("role"),
		IsActive: queryBoolPtr(c, "isActive"),
	})
	if err != nil {
		respondError(c, response.StatusInternal, "error.internal", err)
		return
	}
	locale := i18n.ResolveLocale(c)
	response.Paginated(c, i18n.T(locale, "success"), users, response.NewMeta(page, limit, total))
}

// GetUser GET /api/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	user, err := h.UserService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "success"), user)
}

// CreateUser POST /api/users
func (h *Handler) CreateUser(c *gin.Context) {
	var payload userPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}
	user, err := h.UserService.Create(payload.toInput())
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.internal")
		return
	}
	response.Created(c, i18n.T(i18n.ResolveLocale(c), "created"), user)
}

// UpdateUser PUT /api/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	var payload userPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.StatusBadRequest, "error.invalid_payload", nil)
		return
	}
	user, err := h.UserService.Update(id, payload.toInput())
	if err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "updated"), user)
}

// DeleteUser DELETE /api/users/:id
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, response.StatusBadRequest, "error.invalid_id", nil)
		return
	}
	if err := h.UserService.Delete(id); err != nil {
		respondWithMappedError(c, err, userErrorRules, "error.internal")
		return
	}
	response.OK(c, i18n.T(i18n.ResolveLocale(c), "deleted"), nil)
}
