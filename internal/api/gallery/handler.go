package gallery

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
// POST /artworks
// ------------------------------
func (h *Handler) CreateArtwork(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req struct {
		Title     string  `json:"title" binding:"required"`
		Medium    string  `json:"medium"`
		WidthCM   int     `json:"width_cm"`
		HeightCM  int     `json:"height_cm"`
		FolderID  *string `json:"folder_id"`
		ImagePath string  `json:"image_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	art, err := h.Engine.CreateArtwork(c.Request.Context(), engine.CreateArtworkInput{
		AuthorID:  memberID,
		Title:     req.Title,
		Medium:    req.Medium,
		WidthCM:   req.WidthCM,
		HeightCM:  req.HeightCM,
		FolderID:  req.FolderID,
		ImagePath: req.ImagePath,
	})
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, art)
}

// ------------------------------
// GET /artworks/:id
// ------------------------------
func (h *Handler) GetArtwork(c *gin.Context) {
	art, err := h.Engine.GetArtwork(c.Request.Context(), c.Param("id"))
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, art)
}

// ------------------------------
// DELETE /artworks/:id
// ------------------------------
func (h *Handler) DeleteArtwork(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	err := h.Engine.DeleteArtwork(c.Request.Context(), c.Param("id"), memberID, apiutil.IsModerator(c))
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ------------------------------
// POST /artworks/:id/versions
// ------------------------------
func (h *Handler) CreateVersion(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req struct {
		ImagePath string `json:"image_path"`
		Caption   string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.Engine.CreateVersion(c.Request.Context(), c.Param("id"), memberID, req.ImagePath, req.Caption)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// ------------------------------
// POST /folders
// ------------------------------
func (h *Handler) CreateFolder(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.Engine.CreateFolder(c.Request.Context(), memberID, req.Name)
	if err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// ------------------------------
// PUT /folders/reorder
// ------------------------------
func (h *Handler) ReorderFolders(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req struct {
		Order []string `json:"order" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Engine.ReorderFolders(c.Request.Context(), memberID, req.Order); err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reordered": true})
}

// ------------------------------
// PUT /artworks/:id/folder
// ------------------------------
func (h *Handler) MoveArtworkToFolder(c *gin.Context) {
	memberID, ok := apiutil.MustMemberID(c)
	if !ok {
		return
	}

	var req struct {
		FolderID *string `json:"folder_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Engine.MoveArtworkToFolder(c.Request.Context(), c.Param("id"), memberID, req.FolderID); err != nil {
		apiutil.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": true})
}
