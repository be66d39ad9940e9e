package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/trainer-booking-backend/internal/auth"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/trainer-booking-backend/internal/review"
)

type Handler struct {
	service review.Service
	log     *zap.Logger
}

func NewHandler(service review.Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) List(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	reviews, summary, err := h.service.ListByTrainer(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, NewReviewListResponse(uri.ID, reviews, summary))
}

func (h *Handler) Create(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CreateReviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), review.CreateRequest{
		ClientID:  auth.GetProfileID(c),
		TrainerID: uri.ID,
		Rating:    body.Rating,
		Comment:   body.Comment,
	})
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, NewReviewResponse(r))
}

func (h *Handler) Eligibility(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	ok, err := h.service.Eligible(c.Request.Context(), auth.GetProfileID(c), uri.ID)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, EligibilityResponse{CanReview: ok})
}
