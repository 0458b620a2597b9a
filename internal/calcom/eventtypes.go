package calcom

import (
	"context"
	"fmt"

	"github.com/slotgate/availability-api/internal/models"
	appErrors "github.com/slotgate/availability-api/pkg/errors"
)

// ListEventTypes returns all event types of the authenticated account.
func (c *Client) ListEventTypes(ctx context.Context) ([]models.EventType, error) {
	var payload struct {
		EventTypes []models.EventType `json:"event_types"`
	}
	if err := c.get(ctx, "/event-types", nil, &payload); err != nil {
		return nil, err
	}
	return payload.EventTypes, nil
}

// FindEventTypeBySlug resolves a slug to its event type. An absent slug is
// a NotFound, not an upstream failure.
func (c *Client) FindEventTypeBySlug(ctx context.Context, slug string) (*models.EventType, error) {
	eventTypes, err := c.ListEventTypes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range eventTypes {
		if eventTypes[i].Slug == slug {
			return &eventTypes[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("event type %q not found", slug))
}
