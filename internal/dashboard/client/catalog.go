package client

import (
	"context"
	"net/url"

	"github.com/agriscan/platform/internal/core/domain"
)

// Plants fetches the supported plant types.
func (c *Client) Plants(ctx context.Context) ([]*domain.PlantType, error) {
	var plants []*domain.PlantType
	if err := c.getJSON(ctx, "/plants", nil, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

// Diseases fetches known diseases, optionally scoped to one plant type.
func (c *Client) Diseases(ctx context.Context, plantTypeID string) ([]*domain.Disease, error) {
	q := url.Values{}
	if plantTypeID != "" {
		q.Set("plantTypeId", plantTypeID)
	}

	var diseases []*domain.Disease
	if err := c.getJSON(ctx, "/diseases", q, &diseases); err != nil {
		return nil, err
	}
	return diseases, nil
}
