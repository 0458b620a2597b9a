package calcom

import (
	"context"

	"github.com/slotgate/availability-api/internal/models"
)

// CreateBooking forwards a booking to the upstream platform. A taken slot
// surfaces as ErrNoAvailableUsers in the error chain.
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.post(ctx, "/bookings", nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
