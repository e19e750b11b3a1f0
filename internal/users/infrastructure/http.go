package infrastructure

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-shop/internal/users/application"
	"go-shop/internal/users/domain"
	"go-shop/pkg/auth"
	"go-shop/pkg/errors"
)

// HTTPHandler handles storefront HTTP requests for accounts
type HTTPHandler struct {
	useCase  *application.UserUseCase
	sessions *auth.Manager
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.UserUseCase, sessions *auth.Manager) *HTTPHandler {
	return &HTTPHandler{useCase: useCase, sessions: sessions}
}

// RegisterRoutes registers the public auth routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
		group.POST("/logout", h.Logout)
	}
}

// RegisterRequest is the request body for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the account payload returned on register and login
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register handles POST /auth/register
func (h *HTTPHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	user, err := h.useCase.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, errors.Envelope{
		Status:  true,
		Message: "Account created",
		Data:    toUserResponse(user),
	})
}

// Login handles POST /auth/login
func (h *HTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	user, err := h.useCase.Login(c.Request.Context(), application.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     auth.RoleCustomer,
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

	auth.SetSessionCookie(c, auth.SessionCookie, token, h.sessions.TTL())

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Logged in",
		Data:    toUserResponse(user),
	})
}

// Logout handles POST /auth/logout
func (h *HTTPHandler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, auth.SessionCookie)

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Logged out",
	})
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}
