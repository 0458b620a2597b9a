package models

// EventType mirrors the upstream event-type resource. Length is the
// bookable duration in minutes.
type EventType struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Length      int    `json:"length"`
	UserID      int    `json:"userId"`
	Description string `json:"description,omitempty"`
}
