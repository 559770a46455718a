package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bmekki/fleet-analytics/internal/db"
	"github.com/bmekki/fleet-analytics/internal/models"
)

// RecordHandler handles trip record CRUD requests
type RecordHandler struct {
	records db.TripRecordCollection
}

// NewRecordHandler creates a new trip record handler
func NewRecordHandler(records db.TripRecordCollection) *RecordHandler {
	return &RecordHandler{records: records}
}

// Collection handles list and create requests on /api/records.
// Lists accept truck_id, driver_id, from and to query filters.
func (h *RecordHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles get, update and delete requests on /api/records/{id}
func (h *RecordHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/records/")
	if id == "" {
		http.Error(w, "Record ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		record, err := h.records.FindRecordByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, record)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		if err := h.records.DeleteRecord(r.Context(), id); err != nil {
			http.Error(w, "Failed to delete record", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Record deleted"})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *RecordHandler) list(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	q := r.URL.Query()
	if truckID := q.Get("truck_id"); truckID != "" {
		filter["truck_id"] = truckID
	}
	if driverID := q.Get("driver_id"); driverID != "" {
		filter["driver_id"] = driverID
	}
	if dateRange := dateRangeFilter(q.Get("from"), q.Get("to")); dateRange != nil {
		filter["date"] = dateRange
	}

	records, err := h.records.FindRecords(r.Context(), filter)
	if err != nil {
		log.WithError(err).Error("Failed to list records")
		http.Error(w, "Failed to list records", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.TripRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var record models.TripRecord
	if err := json.Unmarshal(body, &record); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := ValidateRecord(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record.ID = primitive.NewObjectID()
	if err := h.records.InsertRecord(r.Context(), record); err != nil {
		log.WithError(err).Error("Failed to create record")
		http.Error(w, "Failed to create record", http.StatusInternalServerError)
		return
	}

	log.WithFields(log.Fields{
		"record_id": record.ID.Hex(),
		"truck_id":  record.TruckID,
		"date":      record.Date,
		"region":    record.Region,
	}).Info("Created trip record")

	writeJSON(w, http.StatusCreated, record)
}

func (h *RecordHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var record models.TripRecord
	if err := json.Unmarshal(body, &record); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := ValidateRecord(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.records.UpdateRecord(r.Context(), id, record); err != nil {
		http.Error(w, "Failed to update record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Record updated"})
}

// ValidateRecord checks a trip record before it is persisted.
func ValidateRecord(record *models.TripRecord) error {
	if strings.TrimSpace(record.TruckID) == "" {
		return errRequired("truck_id")
	}
	if _, err := time.Parse(models.DateLayout, record.Date); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}
	if record.Distance < 0 || record.FuelQuantity < 0 || record.FuelUnitPrice < 0 ||
		record.MaintenanceCost < 0 || record.Revenue < 0 {
		return errors.New("numeric fields must be non-negative")
	}
	if !record.IsActivity() {
		// A day with no distance, fuel or revenue is a non-activity day and
		// never enters the record set.
		return errors.New("record has no activity")
	}
	return nil
}

func dateRangeFilter(from, to string) bson.M {
	dateRange := bson.M{}
	if from != "" {
		dateRange["$gte"] = from
	}
	if to != "" {
		dateRange["$lte"] = to
	}
	if len(dateRange) == 0 {
		return nil
	}
	return dateRange
}
