package engagement

import (
	"net/http"

	"critiquehub/internal/api/apiutil"
	domain "critiquehub/internal/domain/engagement"
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
// POST /artworks/:id/comments
// ------------------------------
func (h *Handler) AddComment(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.Engine.AddComment(c.Request.Context(), engine.AddCommentInput{
		ArtworkID: c.Param("id"),
		AuthorID:  memberID,
		Content:   req.Content,
		ParentID:  req.ParentID,
		DedupKey:  req.DedupKey,
	})
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ------------------------------
// GET /artworks/:id/comments
// ------------------------------
func (h *Handler) GetThread(c *gin.Context) {
	thread, err := h.Engine.GetThread(c.Request.Context(), c.Param("id"))
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}

	out := make([]ThreadEntryDTO, 0)
	for entry := range thread {
		out = append(out, toThreadEntryDTO(entry))
	}
	c.JSON(http.StatusOK, gin.H{"comments": out})
}

// ------------------------------
// PUT /comments/:id
// ------------------------------
func (h *Handler) UpdateComment(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Engine.UpdateCommentContent(c.Request.Context(), c.Param("id"), memberID, req.Content)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// ------------------------------
// DELETE /comments/:id
// ------------------------------
func (h *Handler) DeleteComment(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	err := h.Engine.DeleteComment(c.Request.Context(), c.Param("id"), memberID, apiutil.IsModerator(c))
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ------------------------------
// POST /artworks/:id/critiques
// ------------------------------
func (h *Handler) SubmitCritique(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req SubmitCritiqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	critique, err := h.Engine.SubmitCritique(c.Request.Context(), engine.SubmitCritiqueInput{
		ArtworkID: c.Param("id"),
		AuthorID:  memberID,
		Content:   req.Content,
		VersionID: req.VersionID,
		DedupKey:  req.DedupKey,
	})
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, critique)
}

// ------------------------------
// PUT /critiques/:id/version
// ------------------------------
func (h *Handler) BindCritiqueVersion(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req struct {
		VersionID string `json:"version_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Engine.BindCritiqueToVersion(c.Request.Context(), c.Param("id"), req.VersionID, memberID)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bound": true})
}

// ------------------------------
// PUT /critiques/:id
// ------------------------------
func (h *Handler) UpdateCritique(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Engine.UpdateCritiqueContent(c.Request.Context(), c.Param("id"), memberID, req.Content)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// ------------------------------
// DELETE /critiques/:id
// ------------------------------
func (h *Handler) DeleteCritique(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	err := h.Engine.DeleteCritique(c.Request.Context(), c.Param("id"), memberID, apiutil.IsModerator(c))
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ------------------------------
// POST /artworks/:id/like
// ------------------------------
func (h *Handler) ToggleLike(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req struct {
		DedupKey *string `json:"dedup_key"`
	}
	_ = c.ShouldBindJSON(&req) // body optional

	liked, err := h.Engine.ToggleLike(c.Request.Context(), c.Param("id"), memberID, req.DedupKey)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}

	count, err := h.Engine.LikeCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "like_count": count})
}

// ------------------------------
// POST /reactions
// ------------------------------
func (h *Handler) PostReaction(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req PostReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reaction, err := h.Engine.PostReaction(c.Request.Context(), engine.PostReactionInput{
		AuthorID:   memberID,
		TargetType: domain.ReactionTarget(req.TargetType),
		TargetID:   req.TargetID,
		Kind:       req.Kind,
		DedupKey:   req.DedupKey,
	})
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reaction)
}

// ------------------------------
// DELETE /reactions/:id
// ------------------------------
func (h *Handler) RemoveReaction(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	err := h.Engine.RemoveReaction(c.Request.Context(), c.Param("id"), memberID)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
