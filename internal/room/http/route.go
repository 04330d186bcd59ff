package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room catalog routes. Creation is admin only;
// reads need any authenticated caller.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", adminMiddleware, h.Create)
	}
}
