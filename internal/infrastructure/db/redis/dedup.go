package redis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agriscan/platform/internal/core/ports"
)

const dedupTTL = time.Hour

// gpsCell is the bucket size in degrees used to coarsen coordinates, so two
// photos of the same plant a few metres apart land in the same cell
// (~1.1 km at the equator).
const gpsCell = 0.01

// DedupChecker guards against duplicate report submissions, backed by Redis.
// Key format: repdedup:<farmer_id>:<plant_type_id>:<lat_cell>:<lng_cell>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this farmer already submitted a report for the
// same plant type from the same GPS cell within the dedup window.
func (d *DedupChecker) IsDuplicate(ctx context.Context, farmerID, plantTypeID string, loc ports.CoordinatesInput) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(farmerID, plantTypeID, loc)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the submission (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, farmerID, plantTypeID string, loc ports.CoordinatesInput) error {
	return d.client.Set(ctx, d.key(farmerID, plantTypeID, loc), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(farmerID, plantTypeID string, loc ports.CoordinatesInput) string {
	latCell := int(math.Floor(loc.Lat / gpsCell))
	lngCell := int(math.Floor(loc.Lng / gpsCell))
	return fmt.Sprintf("repdedup:%s:%s:%d:%d", farmerID, plantTypeID, latCell, lngCell)
}
