package types

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipper-api/internal/services/auth"
)

// Handler utility functions to reduce duplication across handlers

// IdentityKey is the gin context key holding the caller's auth.Identity
const IdentityKey = "identity"

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "Invalid request body",
			Error:   "INVALID_INPUT",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// CurrentIdentity returns the identity set by the auth middleware.
// It sends a 401 and returns false when none is present.
func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if identity, ok := value.(auth.Identity); exists && ok && identity.ID != "" {
		return identity, true
	}
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Status:  StatusError,
		Message: "Authentication required",
		Error:   "UNAUTHORIZED",
	})
	return auth.Identity{}, false
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Status: StatusError, Message: message, Error: "NOT_FOUND"})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreated sends a standardized created response with data
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
