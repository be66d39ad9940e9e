package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/trainer-booking-backend/internal/auth"
	"github.com/nekogravitycat/trainer-booking-backend/internal/booking"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
	log     *zap.Logger
}

func NewHandler(service booking.Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) List(c *gin.Context) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err)
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}
	if query.PageSize == 0 {
		query.PageSize = 20
	}

	filter := booking.Filter{
		ClientID: auth.GetProfileID(c),
		Status:   booking.Status(query.Status),
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	// Trainers see their sessions unless they ask for the ones they booked as a client.
	role := query.Role
	if role == "" && auth.IsTrainer(c) {
		role = "trainer"
	}
	if role == "trainer" {
		filter.ClientID = ""
		filter.TrainerID = auth.GetProfileID(c)
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(newBookingResponses(bookings), query.Page, query.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	req := booking.CreateRequest{
		ClientID:    auth.GetProfileID(c),
		TrainerID:   body.TrainerID,
		SessionType: body.SessionType,
		Duration:    body.Duration,
		Date:        body.Date,
		StartTime:   body.StartTime,
		Notes:       body.Notes,
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), auth.GetProfileID(c), uri.ID)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Dashboard(c *gin.Context) {
	if !auth.IsTrainer(c) {
		response.Error(c, h.log, booking.ErrTrainerOnly)
		return
	}

	d, err := h.service.Dashboard(c.Request.Context(), auth.GetProfileID(c))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, NewDashboardResponse(d))
}

func (h *Handler) Confirm(c *gin.Context) {
	bookingID, ok := bindBookingID(c)
	if !ok {
		return
	}

	// The body is optional; an empty request confirms without a message.
	var body ConfirmRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.BadRequest(c, err)
			return
		}
	}

	b, err := h.service.Confirm(c.Request.Context(), auth.GetProfileID(c), bookingID, body.Message)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) EditAndConfirm(c *gin.Context) {
	h.reschedule(c, h.service.EditAndConfirm)
}

func (h *Handler) UpdateTime(c *gin.Context) {
	h.reschedule(c, h.service.UpdateTime)
}

type rescheduleFunc func(ctx context.Context, actorID, bookingID string, req booking.RescheduleRequest) (*booking.Booking, error)

func (h *Handler) reschedule(c *gin.Context, fn rescheduleFunc) {
	bookingID, ok := bindBookingID(c)
	if !ok {
		return
	}

	var body RescheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	req := booking.RescheduleRequest{
		Date:      body.Date,
		StartTime: body.StartTime,
		Message:   body.Message,
	}

	b, err := fn(c.Request.Context(), auth.GetProfileID(c), bookingID, req)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ProposeAlternates(c *gin.Context) {
	bookingID, ok := bindBookingID(c)
	if !ok {
		return
	}

	var body ProposeAlternatesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	times := make([]booking.AlternativeTime, len(body.AlternativeTimes))
	for i, t := range body.AlternativeTimes {
		times[i] = booking.AlternativeTime{Date: t.Date, StartTime: t.StartTime, EndTime: t.EndTime}
	}

	b, p, err := h.service.ProposeAlternates(c.Request.Context(), auth.GetProfileID(c), bookingID, booking.ProposeRequest{
		AlternativeTimes: times,
		Message:          body.Message,
	})
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ProposeAlternatesResponse{
		Booking:          NewBookingResponse(b),
		AlternativeTimes: p.Lines,
		Note:             p.FormattedNote(),
	})
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	bookingID, ok := bindBookingID(c)
	if !ok {
		return
	}

	var body ChangeStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.service.ChangeStatus(c.Request.Context(), auth.GetProfileID(c), bookingID, body.Status, body.Message)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func bindBookingID(c *gin.Context) (string, bool) {
	var uri request.BookingIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return "", false
	}
	return uri.BookingID, true
}
