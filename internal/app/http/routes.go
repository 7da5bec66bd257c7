package routes

import (
	authapi "critiquehub/internal/api/auth"
	engagementapi "critiquehub/internal/api/engagement"
	galleryapi "critiquehub/internal/api/gallery"
	membersapi "critiquehub/internal/api/members"
	notificationsapi "critiquehub/internal/api/notifications"
	"critiquehub/internal/app/http/middleware"
	"critiquehub/internal/engine"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, eng *engine.Engine) {
	galleryH := galleryapi.NewHandler(eng)
	engagementH := engagementapi.NewHandler(eng)
	notificationsH := notificationsapi.NewHandler(eng)
	membersH := membersapi.NewHandler(eng)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeInputMiddleware())

	auth.GET("/me", membersH.GetCurrentMember)
	auth.GET("/me/karma/history", membersH.GetKarmaHistory)
	auth.GET("/members/:id/karma", membersH.GetKarmaTotal)

	auth.POST("/artworks", galleryH.CreateArtwork)
	auth.GET("/artworks/:id", galleryH.GetArtwork)
	auth.DELETE("/artworks/:id", galleryH.DeleteArtwork)
	auth.POST("/artworks/:id/versions", galleryH.CreateVersion)
	auth.PUT("/artworks/:id/folder", galleryH.MoveArtworkToFolder)

	auth.POST("/folders", galleryH.CreateFolder)
	auth.PUT("/folders/reorder", galleryH.ReorderFolders)

	auth.POST("/artworks/:id/comments", engagementH.AddComment)
	auth.GET("/artworks/:id/comments", engagementH.GetThread)
	auth.PUT("/comments/:id", engagementH.UpdateComment)
	auth.DELETE("/comments/:id", engagementH.DeleteComment)

	auth.POST("/artworks/:id/critiques", engagementH.SubmitCritique)
	auth.PUT("/critiques/:id", engagementH.UpdateCritique)
	auth.PUT("/critiques/:id/version", engagementH.BindCritiqueVersion)
	auth.DELETE("/critiques/:id", engagementH.DeleteCritique)

	auth.POST("/artworks/:id/like", engagementH.ToggleLike)
	auth.POST("/reactions", engagementH.PostReaction)
	auth.DELETE("/reactions/:id", engagementH.RemoveReaction)

	auth.GET("/notifications", notificationsH.List)
	auth.GET("/notifications/unread-count", notificationsH.UnreadCount)
	auth.GET("/notifications/:id/target", notificationsH.ResolveTarget)
	auth.POST("/notifications/:id/read", notificationsH.MarkRead)
	auth.POST("/notifications/read-all", notificationsH.MarkAllRead)

	// Moderation
	mod := r.Group("/mod")
	mod.Use(middleware.AuthMiddleware(), middleware.RequireRole("moderator"))
	mod.DELETE("/artworks/:id", galleryH.DeleteArtwork)
	mod.DELETE("/comments/:id", engagementH.DeleteComment)
	mod.DELETE("/critiques/:id", engagementH.DeleteCritique)
}
