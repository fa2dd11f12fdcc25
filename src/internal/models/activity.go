package models

import "time"

type ActivityMessage struct {
	Username    string            `json:"username"`
	SessionID   string            `json:"session_id"`
	ServiceName string            `json:"service_name"`
	Action      string            `json:"action"`
	IPAddress   string            `json:"ip_address,omitempty"`
	UserAgent   string            `json:"user_agent,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Activity action constants
const (
	ActionLogin             = "login"
	ActionLoginFailed       = "login_failed"
	ActionLogout            = "logout"
	ActionPreferencesUpdate = "preferences_update"
)

// Service name constants
const (
	ServiceAuthLogin       = "auth.handler.login"
	ServiceAuthLogout      = "auth.handler.logout"
	ServiceAuthPreferences = "auth.handler.preferences"
)
