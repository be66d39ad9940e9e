package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, profileMiddleware gin.HandlerFunc) {
	group := g.Group("/trainers/:id/availability")

	// === Public Routes ===
	group.GET("", h.Get)

	// === Authenticated Routes ===
	group.PUT("", authMiddleware, profileMiddleware, h.Replace)
}
