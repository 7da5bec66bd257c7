package members

import (
	"net/http"
	"strconv"

	"critiquehub/database"
	"critiquehub/internal/api/apiutil"
	domain "critiquehub/internal/domain/members"
	"critiquehub/internal/engine"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Engine *engine.Engine
}

func NewHandler(e *engine.Engine) *Handler {
	return &Handler{Engine: e}
}

// ------------------------------
// GET /me
// ------------------------------
func (h *Handler) GetCurrentMember(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var m domain.Member
	if err := database.DB.First(&m, "id = ?", memberID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	total, err := h.Engine.KarmaTotal(c.Request.Context(), memberID)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    m.ID,
		"name":  m.Name,
		"email": m.Email,
		"role":  m.Role,
		"bio":   m.Bio,
		"karma": total,
	})
}

// ------------------------------
// GET /members/:id/karma
// ------------------------------
func (h *Handler) GetKarmaTotal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member id"})
		return
	}

	total, err := h.Engine.KarmaTotal(c.Request.Context(), uint(id))
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member_id": id, "karma": total})
}

// ------------------------------
// GET /me/karma/history
// ------------------------------
func (h *Handler) GetKarmaHistory(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	events, err := h.Engine.KarmaHistory(c.Request.Context(), memberID)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
