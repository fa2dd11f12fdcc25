package models

import "time"

// Theme constants
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Preferences struct {
	Theme string `json:"theme"`
}

// SessionRecord holds the server-side state bound to one session token.
// Token and ExpiresAt never appear in response bodies; the cookie is the
// only carrier of the token.
type SessionRecord struct {
	Token       string      `json:"-"`
	Username    string      `json:"username"`
	LastLogin   time.Time   `json:"lastLogin"`
	Preferences Preferences `json:"preferences"`
	ExpiresAt   time.Time   `json:"-"`
}

// IsValidTheme checks if theme is a recognized value
func IsValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}
