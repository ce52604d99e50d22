package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, limitMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", limitMiddleware, h.Create)
		group.POST("/check-conflict", h.CheckConflict)
		group.PATCH("/:id", h.Reschedule)
		group.POST("/:id/approve", h.Approve)
		group.POST("/:id/reject", h.Reject)
		group.POST("/:id/cancel", h.Cancel)
		group.POST("/:id/check-in", h.CheckIn)
		group.POST("/:id/check-out", h.CheckOut)
	}
}

// RegisterAvailabilityRoutes hangs the per-facility availability query
// off the facility resource path. The response is cacheable.
func RegisterAvailabilityRoutes(g *gin.RouterGroup, h *Handler, cacheMiddleware gin.HandlerFunc) {
	g.GET("/facilities/:id/availability", cacheMiddleware, h.Availability)
}
