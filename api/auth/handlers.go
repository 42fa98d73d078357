package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/api/types"
	"github.com/killallgit/clipper-api/internal/services/auth"
	apperrors "github.com/killallgit/clipper-api/pkg/errors"
	"github.com/killallgit/clipper-api/pkg/logging"
)

// Handler manages auth endpoints
type Handler struct {
	authService *auth.Service
}

// NewHandler creates a new auth handler
func NewHandler(authService *auth.Service) *Handler {
	return &Handler{
		authService: authService,
	}
}

// Me returns the identity resolved from the bearer token
// @Summary Get current user
// @Description Get the caller's identity and role from the bearer token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} types.MeResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /api/v1/me [get]
func (h *Handler) Me(c *gin.Context) {
	identity, ok := types.CurrentIdentity(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, types.MeResponse{
		ID:      identity.ID,
		Role:    string(identity.Role),
		IsAdmin: identity.IsAdmin(),
	})
}

// AuthMiddleware resolves the bearer token to an identity
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip auth entirely in development mode if configured
		if h.authService.SkipAuth() {
			c.Set(types.IdentityKey, auth.DevIdentity)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			types.SendError(c, apperrors.Unauthorized("Authorization header required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			types.SendError(c, apperrors.Unauthorized("Invalid authorization header format"))
			return
		}

		identity, err := h.authService.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			logging.WithComponent("auth").WithError(err).Debug("Rejected bearer token")
			types.SendError(c, apperrors.Unauthorized("Invalid or expired token").WithCause(err))
			return
		}

		c.Set(types.IdentityKey, identity)
		c.Next()
	}
}

// RequireRole allows the request through only for the given role.
// Admins satisfy every role.
func (h *Handler) RequireRole(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := types.CurrentIdentity(c)
		if !ok {
			c.Abort()
			return
		}

		if identity.Role != role && !identity.IsAdmin() {
			types.SendError(c, apperrors.Forbidden(string(role)+" role"))
			return
		}

		c.Next()
	}
}
