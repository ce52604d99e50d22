package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers facility catalog routes. Reads are public
// and cacheable; writes are admin-only.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware, cacheMiddleware gin.HandlerFunc) {
	group := g.Group("/facilities")

	// === Public Routes ===
	group.GET("", cacheMiddleware, h.List)
	group.GET("/:id", cacheMiddleware, h.Get)

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Deactivate)
	}
}
