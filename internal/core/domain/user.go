package domain

import (
	"errors"
	"time"
)

const (
	RoleFarmer    = "farmer"
	RoleInspector = "inspector"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidPhone = errors.New("invalid phone number")
var ErrTokenInvalid = errors.New("invalid or expired token")

// User models a platform account: a farmer submitting plant-health reports
// from the field, or an inspector reviewing them through the dashboard.
type User struct {
	ID           string    `json:"userId"`
	Phone        string    `json:"phone"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	GPSLat       float64   `json:"gpsLat,omitempty"`
	GPSLng       float64   `json:"gpsLng,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	LastActive   time.Time `json:"lastActive,omitempty"`
}

// ValidRole reports whether role is one of the two account roles.
func ValidRole(role string) bool {
	return role == RoleFarmer || role == RoleInspector
}
