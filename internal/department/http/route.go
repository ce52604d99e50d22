package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers department and membership routes. Everything
// here is admin-only except reading the catalog.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/departments")
	group.Use(authMiddleware)

	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/:id/members", h.ListMembers)

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.POST("/:id/members", h.AddMember)
		admin.DELETE("/:id/members/:user_id", h.RemoveMember)
		admin.PATCH("/:id/members/:user_id", h.SetMemberRole)
	}
}
