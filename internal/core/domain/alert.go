package domain

import (
	"errors"
	"time"
)

// AlertSeverity classifies an advisory sent to farmers in a region.
type AlertSeverity string

const (
	AlertInfo    AlertSeverity = "info"
	AlertWarning AlertSeverity = "warning"
	AlertDanger  AlertSeverity = "danger"
)

var ErrAlertNotFound = errors.New("alert not found")

// Alert is a regional advisory created by an inspector: outbreak warnings,
// weather notices, treatment announcements.
type Alert struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Severity    AlertSeverity `json:"severity" bson:"severity"`
	TargetState string        `json:"targetState" bson:"target_state"`
	TargetCity  string        `json:"targetCity,omitempty" bson:"target_city,omitempty"`
	CreatedBy   string        `json:"createdBy" bson:"created_by"`
	CreatedAt   time.Time     `json:"createdAt" bson:"created_at"`
	ExpiresAt   time.Time     `json:"expiresAt" bson:"expires_at"`
}

// Active reports whether the alert has not yet expired at the given instant.
func (a Alert) Active(now time.Time) bool {
	return a.ExpiresAt.After(now)
}

// ValidAlertSeverity reports whether s is a recognised alert severity.
func ValidAlertSeverity(s string) bool {
	switch AlertSeverity(s) {
	case AlertInfo, AlertWarning, AlertDanger:
		return true
	}
	return false
}
