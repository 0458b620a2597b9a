package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/slotgate/availability-api/internal/dto"
	"github.com/slotgate/availability-api/internal/middleware"
	"github.com/slotgate/availability-api/internal/models"
	appErrors "github.com/slotgate/availability-api/pkg/errors"
	"github.com/slotgate/availability-api/pkg/response"
)

type availabilityService interface {
	ComputeFreeSlots(ctx context.Context, username string, startDate time.Time, endDate *time.Time) ([]models.FreeInterval, error)
	FreeScheduleOn(ctx context.Context, username string, date time.Time) ([]models.FreeInterval, error)
}

// AvailabilityHandler exposes the free-slot endpoints.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// List godoc
// @Summary Free slots for a date or date range
// @Tags Availability
// @Produce json
// @Param username query string true "Upstream username"
// @Param date query string false "Single date (YYYY-MM-DD)"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /slots [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "username is required"))
		return
	}

	startRaw := pickQuery(c, "start_date", "startDate")
	if startRaw == "" {
		startRaw = c.Query("date")
	}
	start, err := parseDateOnly(startRaw)
	if err != nil {
		response.Error(c, err)
		return
	}
	if start == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date or startDate is required"))
		return
	}

	end, err := parseDateOnly(pickQuery(c, "end_date", "endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}

	slots, err := h.service.ComputeFreeSlots(c.Request.Context(), username, *start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := middleware.ExtractMeta(c)
	if meta != nil {
		meta["count"] = len(slots)
	}
	response.JSON(c, http.StatusOK, dto.NewFreeSlots(slots), meta)
}

// Range godoc
// @Summary Free slots for an explicit date range
// @Tags Availability
// @Produce json
// @Param username query string true "Upstream username"
// @Param dateFrom query string true "Range start (YYYY-MM-DD)"
// @Param dateTo query string true "Range end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /slots/range [get]
func (h *AvailabilityHandler) Range(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "username is required"))
		return
	}

	from, err := parseDateOnly(pickQuery(c, "date_from", "dateFrom"))
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseDateOnly(pickQuery(c, "date_to", "dateTo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if from == nil || to == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dateFrom and dateTo are required"))
		return
	}

	slots, err := h.service.ComputeFreeSlots(c.Request.Context(), username, *from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := middleware.ExtractMeta(c)
	if meta != nil {
		meta["count"] = len(slots)
	}
	response.JSON(c, http.StatusOK, dto.NewFreeSlots(slots), meta)
}

// FreeSchedule godoc
// @Summary Free intervals from date-pinned schedule entries
// @Tags Availability
// @Produce json
// @Param username query string true "Upstream username"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /free-schedule [get]
func (h *AvailabilityHandler) FreeSchedule(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "username is required"))
		return
	}

	date, err := parseDateOnly(c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if date == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}

	slots, err := h.service.FreeScheduleOn(c.Request.Context(), username, *date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.NewFreeSlots(slots), middleware.ExtractMeta(c))
}

func parseDateOnly(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}
	return &parsed, nil
}

func pickQuery(c *gin.Context, preferred string, fallback string) string {
	if value := c.Query(preferred); value != "" {
		return value
	}
	return c.Query(fallback)
}
