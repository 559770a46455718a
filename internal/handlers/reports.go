package handlers

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bmekki/fleet-analytics/internal/analytics"
	"github.com/bmekki/fleet-analytics/internal/db"
)

// ReportHandler serves per-truck and per-driver summary statistics.
// Summaries are recomputed from the current record set on every request;
// nothing is cached, so edits show up immediately.
type ReportHandler struct {
	records db.TripRecordCollection
	trucks  db.TruckCollection
}

// NewReportHandler creates a new report handler
func NewReportHandler(records db.TripRecordCollection, trucks db.TruckCollection) *ReportHandler {
	return &ReportHandler{records: records, trucks: trucks}
}

// TruckReport handles GET /api/reports/trucks/{id}
func (h *ReportHandler) TruckReport(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/reports/trucks/")
	h.report(w, r, "truck_id", id)
}

// DriverReport handles GET /api/reports/drivers/{id}
func (h *ReportHandler) DriverReport(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/reports/drivers/")
	h.report(w, r, "driver_id", id)
}

func (h *ReportHandler) report(w http.ResponseWriter, r *http.Request, field, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if id == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	filter := bson.M{field: id}
	if dateRange := dateRangeFilter(r.URL.Query().Get("from"), r.URL.Query().Get("to")); dateRange != nil {
		filter["date"] = dateRange
	}

	records, err := h.records.FindRecords(r.Context(), filter)
	if err != nil {
		log.WithError(err).Error("Failed to load records for report")
		http.Error(w, "Failed to load records", http.StatusInternalServerError)
		return
	}

	// A driver's records may span several trucks, so the owning truck is
	// resolved per record from a snapshot of the fleet.
	resolve, err := db.TruckResolverFrom(r.Context(), h.trucks)
	if err != nil {
		log.WithError(err).Error("Failed to load trucks for report")
		http.Error(w, "Failed to load trucks", http.StatusInternalServerError)
		return
	}

	stats := analytics.Summarize(records, resolve)
	writeJSON(w, http.StatusOK, stats)
}
