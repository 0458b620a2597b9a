package models

import "time"

// WorkingHourRule is a recurring weekly availability window as returned by
// the upstream availability endpoint. Start and end are minutes since local
// midnight; Days holds weekday indexes with 0 = Sunday.
type WorkingHourRule struct {
	Days        []int `json:"days"`
	StartMinute int   `json:"startTime"`
	EndMinute   int   `json:"endTime"`
	UserID      int   `json:"userId,omitempty"`
}

// AppliesOn reports whether the rule is active on the given weekday index.
func (r WorkingHourRule) AppliesOn(weekday int) bool {
	for _, d := range r.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// BusyInterval is an already committed booking or blocked period.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Title string    `json:"title,omitempty"`
}

// FreeInterval is a computed bookable window. Both bounds carry the
// calculator's fixed target offset.
type FreeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
