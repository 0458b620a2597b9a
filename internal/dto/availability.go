package dto

import (
	"github.com/slotgate/availability-api/internal/models"
)

// SlotLayout is the wire format for slot boundaries: ISO-8601 with the
// explicit UTC offset of the calculator's target zone.
const SlotLayout = "2006-01-02T15:04:05-07:00"

// FreeSlot is a single bookable interval as rendered to clients.
type FreeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NewFreeSlots renders computed intervals in the wire format, preserving
// order. The result is never nil so an empty day serialises as [].
func NewFreeSlots(intervals []models.FreeInterval) []FreeSlot {
	slots := make([]FreeSlot, 0, len(intervals))
	for _, iv := range intervals {
		slots = append(slots, FreeSlot{
			Start: iv.Start.Format(SlotLayout),
			End:   iv.End.Format(SlotLayout),
		})
	}
	return slots
}
