package geo

import (
	"math"
	"strings"

	"github.com/bmekki/fleet-analytics/internal/models"
)

const (
	earthRadiusKm = 6371.0
	// Empirical multiplier converting great-circle distance to an
	// approximate driving distance on the road network.
	roadFactor = 1.35

	sameDelegationKm = 10
	intraRegionMinKm = 15
	sameRegionKm     = 20
)

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(a, b models.Location) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	s := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
	return earthRadiusKm * c
}

// RoadDistanceKm converts two points into a road-distance estimate,
// rounded to the nearest kilometer.
func RoadDistanceKm(a, b models.Location) int {
	return int(math.Round(HaversineKm(a, b) * roadFactor))
}

// EstimateKm suggests a road distance between two destinations given as
// governorate plus optional delegation. Zero means "unestimated": either
// governorate was not recognized and the caller should fall back to manual
// entry. The same-region constants are deliberate and asymmetric: trips
// within one delegation get 10 km, trips between two named delegations get
// at least 15 km, and trips where no delegation detail was requested get a
// flat 20 km.
func EstimateKm(regionA, delegationA, regionB, delegationB string) int {
	regionA = strings.TrimSpace(regionA)
	regionB = strings.TrimSpace(regionB)
	delegationA = strings.TrimSpace(delegationA)
	delegationB = strings.TrimSpace(delegationB)

	if regionA == regionB {
		if _, ok := Coordinate(regionA); !ok {
			return 0
		}
		if delegationA == "" || delegationB == "" {
			return sameRegionKm
		}
		if delegationA == delegationB {
			return sameDelegationKm
		}
		a, _ := EstimateLocation(regionA, delegationA)
		b, _ := EstimateLocation(regionB, delegationB)
		if d := RoadDistanceKm(a, b); d > intraRegionMinKm {
			return d
		}
		return intraRegionMinKm
	}

	a, ok := EstimateLocation(regionA, delegationA)
	if !ok {
		return 0
	}
	b, ok := EstimateLocation(regionB, delegationB)
	if !ok {
		return 0
	}
	return RoadDistanceKm(a, b)
}
