package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// AuthHandler serves the register-or-login endpoint.
type AuthHandler struct {
	auth service.IAuthService
}

func NewAuthHandler(auth service.IAuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/auth", h.RegisterOrLogin)
}

// RegisterOrLogin answers 201 for a new account and 200 for an existing one.
// The body is the same in both cases.
func (h *AuthHandler) RegisterOrLogin(c *gin.Context) {
	var req types.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	res, err := h.auth.RegisterOrLogin(c.Request.Context(), req.Email, req.SecretValue())
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, types.AuthResponse{
		Token: res.Token,
		Email: res.Email,
		ID:    res.AccountID.String(),
	})
}
