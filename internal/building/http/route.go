package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers building routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware, cacheMiddleware gin.HandlerFunc) {
	group := g.Group("/buildings")

	// === Public Routes ===
	group.GET("", cacheMiddleware, h.List)
	group.GET("/:id", cacheMiddleware, h.Get)

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}
