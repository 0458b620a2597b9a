package models

// BookingLocation describes where a booking takes place.
type BookingLocation struct {
	Value       string `json:"value"`
	OptionValue string `json:"optionValue,omitempty"`
	Address     string `json:"address,omitempty"`
}

// BookingResponses carries the attendee answers forwarded upstream.
type BookingResponses struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Location BookingLocation `json:"location"`
}

// BookingRequest is the wire payload for the upstream bookings endpoint.
type BookingRequest struct {
	EventTypeID int                    `json:"eventTypeId"`
	Start       string                 `json:"start"`
	End         string                 `json:"end,omitempty"`
	Responses   BookingResponses       `json:"responses"`
	TimeZone    string                 `json:"timeZone"`
	Language    string                 `json:"language"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description,omitempty"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Booking is a confirmed upstream booking.
type Booking struct {
	ID          int    `json:"id"`
	UID         string `json:"uid,omitempty"`
	UserID      int    `json:"userId,omitempty"`
	EventTypeID int    `json:"eventTypeId"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status,omitempty"`
}
