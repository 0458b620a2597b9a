package calcom

import (
	"context"
	"net/url"
	"time"

	"github.com/slotgate/availability-api/internal/models"
)

const dateOnlyLayout = "2006-01-02"

// availabilityPayload is the upstream /availability response. The endpoint
// returns both collaborator datasets in one payload; the client fans them
// out behind the two interfaces the calculator consumes.
type availabilityPayload struct {
	Busy         []models.BusyInterval    `json:"busy"`
	WorkingHours []models.WorkingHourRule `json:"workingHours"`
}

// FetchWorkingHours returns the recurring weekly availability windows for
// a user within the requested date range.
func (c *Client) FetchWorkingHours(ctx context.Context, username string, from, to time.Time) ([]models.WorkingHourRule, error) {
	payload, err := c.availability(ctx, username, from, to)
	if err != nil {
		return nil, err
	}
	return payload.WorkingHours, nil
}

// FetchBusyIntervals returns already booked or blocked periods for a user
// within the requested date range.
func (c *Client) FetchBusyIntervals(ctx context.Context, username string, from, to time.Time) ([]models.BusyInterval, error) {
	payload, err := c.availability(ctx, username, from, to)
	if err != nil {
		return nil, err
	}
	return payload.Busy, nil
}

func (c *Client) availability(ctx context.Context, username string, from, to time.Time) (*availabilityPayload, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("dateFrom", from.Format(dateOnlyLayout))
	query.Set("dateTo", to.Format(dateOnlyLayout))

	var payload availabilityPayload
	if err := c.get(ctx, "/availability", query, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
