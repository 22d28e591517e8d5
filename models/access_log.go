package models

import "time"

// Action types recorded in the access log
const (
	ActionLogin     = "login"
	ActionLogout    = "logout"
	ActionPageVisit = "page_visit"
)

// ValidActionTypes lists the accepted action_type values
var ValidActionTypes = []string{ActionLogin, ActionLogout, ActionPageVisit}

// AccessLogEntry represents a single recorded user action.
// Entries are append-only: created once, never updated or deleted.
type AccessLogEntry struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Nome      string    `json:"nome,omitempty"`
	Cognome   string    `json:"cognome,omitempty"`
	Ruolo     string    `json:"ruolo,omitempty"`
	Action    string    `json:"action_type"`
	PageURL   string    `json:"page_url,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AccessLogForm represents the payload for recording an access event
type AccessLogForm struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Nome      string `json:"nome"`
	Cognome   string `json:"cognome"`
	Ruolo     string `json:"ruolo"`
	Action    string `json:"action_type"`
	PageURL   string `json:"page_url"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}

// Validate checks the required fields and the action_type enumeration
func (f *AccessLogForm) Validate() error {
	if f.UserID == 0 {
		return NewValidationError("user_id", "user_id is required")
	}
	if f.Username == "" {
		return NewValidationError("username", "username is required")
	}
	if f.Action == "" {
		return NewValidationError("action_type", "action_type is required")
	}
	if !IsValidActionType(f.Action) {
		return NewValidationError("action_type", "action_type must be one of login, logout, page_visit")
	}
	return nil
}

// IsValidActionType reports whether action is one of the enumerated values
func IsValidActionType(action string) bool {
	for _, a := range ValidActionTypes {
		if a == action {
			return true
		}
	}
	return false
}

// AccessLogFilter holds the optional filters and pagination for listing entries.
// Filter values are plain equality predicates; unknown action types simply match nothing.
type AccessLogFilter struct {
	UserID *int
	Action string
	Limit  int
	Offset int
}

// DefaultAccessLogLimit is applied when the caller does not specify a limit
const DefaultAccessLogLimit = 100

// Normalize applies the default limit and clamps negative offsets
func (f *AccessLogFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultAccessLogLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Pagination describes the window returned by a list call
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}
