package calcom

import (
	"context"

	"github.com/slotgate/availability-api/internal/models"
)

// CurrentUser returns the profile of the API-key owner.
func (c *Client) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	var payload struct {
		User models.UserProfile `json:"user"`
	}
	if err := c.get(ctx, "/me", nil, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}
