package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room photo routes. Uploading and deleting are
// admin only; downloads are open to any authenticated caller.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	g.POST("/rooms/:id/photos", authMiddleware, adminMiddleware, h.Upload)
	g.GET("/rooms/:id/photos", authMiddleware, h.ListByRoom)

	photos := g.Group("/photos")
	photos.Use(authMiddleware)
	{
		photos.GET("/:id", h.Download)
		photos.GET("/:id/thumbnail", h.DownloadThumbnail)
		photos.DELETE("/:id", adminMiddleware, h.Delete)
	}
}
