package analytics

import (
	"github.com/bmekki/fleet-analytics/internal/models"
)

// TruckResolver looks up the truck owning a trip record. ok=false means the
// reference could not be resolved (the truck was deleted after ingestion);
// the record's fixed costs are then counted as zero.
type TruckResolver func(truckID string) (models.Truck, bool)

// TripCost is the cost breakdown of a single trip record.
type TripCost struct {
	Fuel        float64 `json:"fuel"`
	Fixed       float64 `json:"fixed"`
	Maintenance float64 `json:"maintenance"`
	Total       float64 `json:"total"`
}

// CostOf computes the total operating cost of one trip record. The owning
// truck's fixed-cost bundle is charged in full to every record of that truck,
// even when several records fall on the same day. ok=false (orphaned record)
// contributes zero fixed cost.
func CostOf(record models.TripRecord, truck models.Truck, ok bool) TripCost {
	cost := TripCost{
		Fuel:        record.FuelQuantity * record.FuelUnitPrice,
		Maintenance: record.MaintenanceCost,
	}
	if ok {
		cost.Fixed = truck.FixedCost()
	}
	cost.Total = cost.Fuel + cost.Fixed + cost.Maintenance
	return cost
}
