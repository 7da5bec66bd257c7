package apiutil

import (
	"errors"
	"net/http"

	"critiquehub/internal/engine"

	"github.com/gin-gonic/gin"
)

// RespondError maps engine errors onto HTTP statuses. Anything
// unmapped is a 500 with a generic message.
func RespondError(c *gin.Context, err error) {
	var ve *engine.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, engine.ErrInvalidParent):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrVersionMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// MustMemberID pulls the authenticated member id set by the JWT
// middleware; writes a 401 and returns false when absent.
func MustMemberID(c *gin.Context) (uint, bool) {
	memberID := c.GetUint("member_id")
	if memberID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return memberID, true
}

// IsModerator reports whether the token carries the moderator or
// admin role.
func IsModerator(c *gin.Context) bool {
	role, _ := c.Get("role")
	return role == "moderator" || role == "admin"
}
