package models

// UserProfile is the authenticated upstream account, used to fill booking
// defaults (name, email, timezone, locale).
type UserProfile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	TimeZone string `json:"timeZone"`
	Locale   string `json:"locale,omitempty"`
}
