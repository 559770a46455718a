package handlers

import (
	"net/http"

	"github.com/bmekki/fleet-analytics/internal/geo"
)

// DistanceResponse is the suggested road distance for a destination pair.
// Estimated is false when either governorate was not recognized; the
// dashboard then falls back to manual distance entry.
type DistanceResponse struct {
	Km        int  `json:"km"`
	Estimated bool `json:"estimated"`
}

// EstimateDistance handles GET /api/distance. Query parameters: from_region,
// from_delegation, to_region, to_delegation.
func EstimateDistance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	fromRegion := q.Get("from_region")
	toRegion := q.Get("to_region")
	if fromRegion == "" || toRegion == "" {
		http.Error(w, "from_region and to_region are required", http.StatusBadRequest)
		return
	}

	km := geo.EstimateKm(fromRegion, q.Get("from_delegation"), toRegion, q.Get("to_delegation"))
	writeJSON(w, http.StatusOK, DistanceResponse{Km: km, Estimated: km > 0})
}

// ListRegions handles GET /api/regions, returning the canonical governorate
// names for destination dropdowns.
func ListRegions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, geo.Regions())
}
