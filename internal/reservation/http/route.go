package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking-engine routes. Availability search and all
// reservation operations require an authenticated caller; ownership and admin
// checks happen in the handlers.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/availability", authMiddleware, h.Search)

	group := g.Group("/reservations")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.DELETE("/:id", h.Delete)
	}
}
