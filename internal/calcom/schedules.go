package calcom

import (
	"context"
	"net/url"

	"github.com/slotgate/availability-api/internal/models"
)

// ListSchedules returns the user's schedules including date-pinned
// availability entries.
func (c *Client) ListSchedules(ctx context.Context, username string) ([]models.Schedule, error) {
	query := url.Values{}
	query.Set("username", username)

	var payload struct {
		Schedules []models.Schedule `json:"schedules"`
	}
	if err := c.get(ctx, "/schedules", query, &payload); err != nil {
		return nil, err
	}
	return payload.Schedules, nil
}
