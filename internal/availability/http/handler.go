package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/trainer-booking-backend/internal/auth"
	"github.com/nekogravitycat/trainer-booking-backend/internal/availability"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
	log     *zap.Logger
}

func NewHandler(service availability.Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	slots, err := h.service.Get(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(uri.ID, slots))
}

func (h *Handler) Replace(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	slots := make([]availability.DisplaySlot, len(body.Availability))
	for i, d := range body.Availability {
		slots[i] = availability.DisplaySlot{Day: d.Day, TimeRanges: d.TimeRanges}
	}

	saved, err := h.service.Replace(c.Request.Context(), auth.GetProfileID(c), uri.ID, slots)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(uri.ID, saved))
}
