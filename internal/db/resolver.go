package db

import (
	"context"
	"fmt"

	"github.com/bmekki/fleet-analytics/internal/analytics"
	"github.com/bmekki/fleet-analytics/internal/models"
)

// TruckResolverFrom snapshots the current trucks into memory and returns a
// resolver for the aggregation engine. The snapshot is taken once per report
// so a summary is computed against a consistent view of the fleet; records
// whose truck has been deleted simply resolve to absent.
func TruckResolverFrom(ctx context.Context, trucks TruckCollection) (analytics.TruckResolver, error) {
	all, err := trucks.FindTrucks(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("truck resolver: load trucks: %w", err)
	}

	byID := make(map[string]models.Truck, len(all))
	for _, t := range all {
		byID[t.ID.Hex()] = t
	}

	return func(id string) (models.Truck, bool) {
		t, ok := byID[id]
		return t, ok
	}, nil
}
