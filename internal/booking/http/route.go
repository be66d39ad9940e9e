package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts client booking routes and the trainer dashboard.
// profileMiddleware must run after authMiddleware.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, profileMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	bookings.Use(authMiddleware, profileMiddleware)
	{
		bookings.GET("", h.List)
		bookings.POST("", h.Create)
		bookings.GET("/:id", h.Get)
	}

	dashboard := g.Group("/dashboard")
	dashboard.Use(authMiddleware, profileMiddleware)
	{
		dashboard.GET("", h.Dashboard)
		dashboard.POST("/:bookingId/confirm", h.Confirm)
		dashboard.PATCH("/:bookingId/edit-and-confirm", h.EditAndConfirm)
		dashboard.PATCH("/:bookingId/update-time", h.UpdateTime)
		dashboard.POST("/:bookingId/propose-alternate-time", h.ProposeAlternates)
		dashboard.PATCH("/:bookingId/status", h.ChangeStatus)
	}
}
