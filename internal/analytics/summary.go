package analytics

import (
	"github.com/bmekki/fleet-analytics/internal/models"
)

// Stats summarizes a set of trip records for one truck or one driver.
type Stats struct {
	TripCount        int     `json:"trip_count"`
	TotalDistance    float64 `json:"total_distance"`    // km
	TotalFuel        float64 `json:"total_fuel"`        // liters
	TotalCost        float64 `json:"total_cost"`
	TotalRevenue     float64 `json:"total_revenue"`
	Result           float64 `json:"result"`            // revenue - cost
	CostPerKm        float64 `json:"cost_per_km"`
	ConsumptionRate  float64 `json:"consumption_rate"`  // liters per 100 km
	PerformanceRatio float64 `json:"performance_ratio"` // result as % of revenue, signed
}

// Summarize folds trip records into aggregate statistics. The caller passes
// the subset already filtered to one truck or one driver; a driver's records
// may span several trucks, so the owning truck is resolved per record.
//
// Pure aggregation: inputs are not mutated, nothing is cached between calls,
// an empty input yields zero Stats, and zero denominators yield zero rates.
func Summarize(records []models.TripRecord, resolve TruckResolver) Stats {
	var stats Stats

	for _, record := range records {
		truck, ok := resolve(record.TruckID)
		cost := CostOf(record, truck, ok)

		stats.TripCount++
		stats.TotalDistance += record.Distance
		stats.TotalFuel += record.FuelQuantity
		stats.TotalCost += cost.Total
		stats.TotalRevenue += record.Revenue
	}

	stats.Result = stats.TotalRevenue - stats.TotalCost
	if stats.TotalDistance > 0 {
		stats.CostPerKm = stats.TotalCost / stats.TotalDistance
		stats.ConsumptionRate = stats.TotalFuel / stats.TotalDistance * 100
	}
	if stats.TotalRevenue > 0 {
		stats.PerformanceRatio = stats.Result / stats.TotalRevenue * 100
	}

	return stats
}
