package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers file routes. Downloads are public so photo
// URLs can be embedded directly; uploads and deletes are admin-only.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/files")

	// === Public Routes ===
	group.GET("/:id", h.Download)
	group.GET("/:id/thumbnail", h.Thumbnail)

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Upload)
		admin.DELETE("/:id", h.Delete)
	}
}
