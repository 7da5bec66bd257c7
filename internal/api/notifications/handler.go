package notifications

import (
	"net/http"

	"critiquehub/internal/api/apiutil"
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
// GET /notifications?unread=true
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	unreadOnly := c.DefaultQuery("unread", "false") == "true"
	list, err := h.Engine.ListForRecipient(c.Request.Context(), memberID, unreadOnly)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// ------------------------------
// GET /notifications/unread-count
// ------------------------------
func (h *Handler) UnreadCount(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	n, err := h.Engine.UnreadCount(c.Request.Context(), memberID)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// ------------------------------
// POST /notifications/:id/read
// ------------------------------
func (h *Handler) MarkRead(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	if err := h.Engine.MarkRead(c.Request.Context(), c.Param("id"), memberID); err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

// ------------------------------
// POST /notifications/read-all
// ------------------------------
func (h *Handler) MarkAllRead(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	if err := h.Engine.MarkAllRead(c.Request.Context(), memberID); err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

// ------------------------------
// GET /notifications/:id/target
// ------------------------------
func (h *Handler) ResolveTarget(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	n, err := h.Engine.GetForRecipient(c.Request.Context(), c.Param("id"), memberID)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}

	target, err := h.Engine.ResolveTarget(c.Request.Context(), *n)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}
