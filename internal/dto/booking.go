package dto

import "github.com/slotgate/availability-api/internal/models"

// CreateBookingRequest is the inbound booking payload. Either EventTypeID
// or EventTypeSlug must be supplied; attendee identity is resolved from the
// upstream profile, not the request.
type CreateBookingRequest struct {
	EventTypeID   int                    `json:"eventTypeId"`
	EventTypeSlug string                 `json:"eventTypeSlug"`
	Start         string                 `json:"start" binding:"required,iso8601"`
	End           string                 `json:"end" binding:"omitempty,iso8601"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Location      models.BookingLocation `json:"location"`
	Metadata      map[string]interface{} `json:"metadata"`
}

// BookingResult carries either a confirmed booking or, when the requested
// slot was taken upstream, same-day alternatives.
type BookingResult struct {
	Booking     *models.Booking `json:"booking,omitempty"`
	Suggestions []FreeSlot      `json:"suggestions,omitempty"`
}

// SlotUnavailableResponse is rendered with HTTP 409 when the requested
// slot cannot be booked.
type SlotUnavailableResponse struct {
	Message     string     `json:"message"`
	Suggestions []FreeSlot `json:"suggestions"`
}
