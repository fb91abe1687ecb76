package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agriscan/platform/internal/core/domain"
)

// AlertPage is one page of the advisory listing.
type AlertPage struct {
	Items      []*domain.Alert `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// CreateAlertInput carries a new regional advisory.
type CreateAlertInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	TargetState string `json:"targetState"`
	TargetCity  string `json:"targetCity,omitempty"`
	ExpiresAt   string `json:"expiresAt,omitempty"`
}

// UpdateAlertInput carries the editable advisory fields. Nil means unchanged.
type UpdateAlertInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Severity    *string `json:"severity,omitempty"`
	ExpiresAt   *string `json:"expiresAt,omitempty"`
}

// ListAlerts fetches one page of advisories.
func (c *Client) ListAlerts(ctx context.Context, severity string, page, limit int) (*AlertPage, error) {
	q := url.Values{}
	if severity != "" {
		q.Set("severity", severity)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var result AlertPage
	if err := c.getJSON(ctx, "/alerts", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateAlert publishes a new advisory.
func (c *Client) CreateAlert(ctx context.Context, input CreateAlertInput) (*domain.Alert, error) {
	var alert domain.Alert
	if _, err := c.sendJSON(ctx, http.MethodPost, "/alerts", input, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// UpdateAlert edits an existing advisory.
func (c *Client) UpdateAlert(ctx context.Context, id string, input UpdateAlertInput) (*domain.Alert, error) {
	var alert domain.Alert
	if _, err := c.sendJSON(ctx, http.MethodPut, "/alerts/"+url.PathEscape(id), input, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// DeleteAlert removes an advisory.
func (c *Client) DeleteAlert(ctx context.Context, id string) error {
	_, err := c.sendJSON(ctx, http.MethodDelete, "/alerts/"+url.PathEscape(id), nil, nil)
	return err
}
