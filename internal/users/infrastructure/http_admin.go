package infrastructure

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-shop/internal/users/application"
	"go-shop/pkg/auth"
	"go-shop/pkg/errors"
)

// AdminHTTPHandler handles admin console HTTP requests for accounts
type AdminHTTPHandler struct {
	useCase  *application.UserUseCase
	sessions *auth.Manager
}

// NewAdminHTTPHandler creates a new admin HTTP handler
func NewAdminHTTPHandler(useCase *application.UserUseCase, sessions *auth.Manager) *AdminHTTPHandler {
	return &AdminHTTPHandler{useCase: useCase, sessions: sessions}
}

// RegisterAuthRoutes registers the admin login routes, which sit outside
// the session-protected group
func (h *AdminHTTPHandler) RegisterAuthRoutes(r *gin.RouterGroup) {
	group := r.Group("/admin/auth")
	{
		group.POST("/login", h.Login)
		group.POST("/logout", h.Logout)
	}
}

// RegisterRoutes registers the protected admin user routes
func (h *AdminHTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/admin/users")
	{
		users.GET("", h.ListUsers)
		users.POST("/:id/active", h.SetActive)
	}
}

// AdminSetActiveRequest flips an account's enabled flag; is_active is 0
// or 1
type AdminSetActiveRequest struct {
	IsActive *int `json:"is_active" binding:"required"`
}

// Login handles POST /admin/auth/login
func (h *AdminHTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	user, err := h.useCase.Login(c.Request.Context(), application.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     auth.RoleAdmin,
	})
	if err != nil {
		c.Error(err)
		return
	}

	token, err := h.sessions.Issue(user.ID, user.Role)
	if err != nil {
		c.Error(errors.NewInternal("failed to create session", err))
		return
	}

	auth.SetSessionCookie(c, auth.AdminSessionCookie, token, h.sessions.TTL())

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Logged in",
		Data:    toUserResponse(user),
	})
}

// Logout handles POST /admin/auth/logout
func (h *AdminHTTPHandler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, auth.AdminSessionCookie)

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Logged out",
	})
}

// ListUsers handles GET /admin/users
func (h *AdminHTTPHandler) ListUsers(c *gin.Context) {
	users, err := h.useCase.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	data := make([]gin.H, len(users))
	for i, user := range users {
		data[i] = gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"is_active": user.IsActive,
		}
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Users fetched",
		Data:    data,
	})
}

// SetActive handles POST /admin/users/:id/active
func (h *AdminHTTPHandler) SetActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid user id", nil))
		return
	}

	var req AdminSetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	if err := h.useCase.SetUserActive(c.Request.Context(), uint(id), *req.IsActive != 0); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "User updated",
	})
}
