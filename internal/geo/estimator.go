package geo

import (
	"math"
	"strings"

	"github.com/bmekki/fleet-analytics/internal/models"
)

// The jitter below is a compatibility contract: the same (region, delegation)
// name pair must map to the same point across runs and across processes, so
// records entered on different machines agree on estimated distances. Do not
// change the constants.
const (
	fnvBasis    uint32 = 2166136261
	fnvPrime    uint32 = 16777619
	seedGamma   uint32 = 0x9e3779b9
	minJitterKm        = 5.0
	maxJitterKm        = 30.0
	kmPerDegLat        = 111.0
)

// nameSeed folds the UTF-8 bytes of "region|delegation" into a 32-bit seed
// (FNV-1a).
func nameSeed(region, delegation string) uint32 {
	h := fnvBasis
	for _, b := range []byte(region + "|" + delegation) {
		h ^= uint32(b)
		h *= fnvPrime
	}
	return h
}

// unit maps a seed to a uniform value in [0,1) via one xorshift32 step.
func unit(seed uint32) float64 {
	seed ^= seed << 13
	seed ^= seed >> 17
	seed ^= seed << 5
	return float64(seed) / (1 << 32)
}

// EstimateLocation derives a reproducible coordinate for a governorate and an
// optional delegation. An unknown governorate yields ok=false. With no
// delegation the curated coordinate is returned unchanged; otherwise the
// coordinate is displaced by a deterministic 5-30 km jitter seeded by the
// name pair.
func EstimateLocation(region, delegation string) (models.Location, bool) {
	base, ok := Coordinate(region)
	if !ok {
		return models.Location{}, false
	}

	delegation = strings.TrimSpace(delegation)
	if delegation == "" {
		return base, true
	}

	seed := nameSeed(strings.TrimSpace(region), delegation)
	angle := unit(seed) * 2 * math.Pi
	radius := minJitterKm + unit(seed^seedGamma)*(maxJitterKm-minJitterKm)

	northKm := radius * math.Cos(angle)
	eastKm := radius * math.Sin(angle)

	// Longitude degrees shrink with latitude; the clamp guards the division
	// near the poles.
	cosLat := math.Cos(base.Lat * math.Pi / 180)
	if cosLat < 0.2 {
		cosLat = 0.2
	}

	return models.Location{
		Lat: base.Lat + northKm/kmPerDegLat,
		Lon: base.Lon + eastKm/(kmPerDegLat*cosLat),
	}, true
}
