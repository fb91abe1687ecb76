package client

import (
	"context"
	"net/http"

	"github.com/agriscan/platform/internal/core/domain"
)

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Phone    string  `json:"phone"`
	Password string  `json:"password"`
	FullName string  `json:"fullName"`
	Role     string  `json:"role"`
	City     string  `json:"city,omitempty"`
	State    string  `json:"state,omitempty"`
	GPSLat   float64 `json:"gpsLat,omitempty"`
	GPSLng   float64 `json:"gpsLng,omitempty"`
}

// ProfileUpdate carries only the mutable profile fields. Nil means unchanged;
// phone, role and id are never sent.
type ProfileUpdate struct {
	FullName *string  `json:"fullName,omitempty"`
	City     *string  `json:"city,omitempty"`
	State    *string  `json:"state,omitempty"`
	GPSLat   *float64 `json:"gpsLat,omitempty"`
	GPSLng   *float64 `json:"gpsLng,omitempty"`
}

// Login exchanges credentials for a bearer token and the account record.
// The caller decides whether to persist the token.
func (c *Client) Login(ctx context.Context, phone, password string) (string, *domain.User, error) {
	payload := map[string]string{"phone": phone, "password": password}

	var user domain.User
	env, err := c.sendJSON(ctx, http.MethodPost, "/auth/login", payload, &user)
	if err != nil {
		return "", nil, err
	}
	return env.Token, &user, nil
}

// Register creates a new account. It does not log the account in.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	var user domain.User
	if _, err := c.sendJSON(ctx, http.MethodPost, "/auth/register", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile fetches the account behind the stored token.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.getJSON(ctx, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update and returns the new record.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error) {
	var user domain.User
	if _, err := c.sendJSON(ctx, http.MethodPut, "/auth/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
