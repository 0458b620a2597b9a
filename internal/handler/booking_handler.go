package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slotgate/availability-api/internal/dto"
	"github.com/slotgate/availability-api/internal/models"
	appErrors "github.com/slotgate/availability-api/pkg/errors"
	"github.com/slotgate/availability-api/pkg/response"
)

type bookingService interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResult, error)
	EventTypes(ctx context.Context) ([]models.EventType, error)
}

// BookingHandler exposes booking forwarding and event-type listing.
type BookingHandler struct {
	service bookingService
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(service bookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create godoc
// @Summary Forward a booking to the upstream platform
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body dto.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid booking payload: "+err.Error()))
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Booking == nil {
		response.JSON(c, http.StatusConflict, dto.SlotUnavailableResponse{
			Message:     "slot not available, please choose one of the suggested slots",
			Suggestions: result.Suggestions,
		})
		return
	}

	response.Created(c, result.Booking)
}

// ListEventTypes godoc
// @Summary List bookable event types
// @Tags Bookings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /event-types [get]
func (h *BookingHandler) ListEventTypes(c *gin.Context) {
	eventTypes, err := h.service.EventTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, eventTypes)
}
