package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, profileMiddleware gin.HandlerFunc) {
	group := g.Group("/trainers/:id/reviews")

	// === Public Routes ===
	group.GET("", h.List)

	// === Authenticated Routes ===
	group.POST("", authMiddleware, profileMiddleware, h.Create)
	group.GET("/eligibility", authMiddleware, profileMiddleware, h.Eligibility)
}
