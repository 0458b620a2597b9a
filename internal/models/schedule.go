package models

// Schedule is an upstream schedule container. Its entries are either
// recurring (Days set) or pinned to a concrete date (Date set).
type Schedule struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	TimeZone     string          `json:"timeZone"`
	Availability []ScheduleEntry `json:"availability"`
}

// ScheduleEntry is a single availability row inside a schedule. StartTime
// and EndTime are wall-clock strings ("09:00:00").
type ScheduleEntry struct {
	Days      []int   `json:"days,omitempty"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Date      *string `json:"date,omitempty"`
}
