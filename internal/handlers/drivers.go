package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bmekki/fleet-analytics/internal/db"
	"github.com/bmekki/fleet-analytics/internal/models"
)

// DriverHandler handles driver CRUD requests
type DriverHandler struct {
	drivers db.DriverCollection
}

// NewDriverHandler creates a new driver handler
func NewDriverHandler(drivers db.DriverCollection) *DriverHandler {
	return &DriverHandler{drivers: drivers}
}

// Collection handles list and create requests on /api/drivers
func (h *DriverHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		drivers, err := h.drivers.FindDrivers(r.Context(), nil)
		if err != nil {
			log.WithError(err).Error("Failed to list drivers")
			http.Error(w, "Failed to list drivers", http.StatusInternalServerError)
			return
		}
		if drivers == nil {
			drivers = []models.Driver{}
		}
		writeJSON(w, http.StatusOK, drivers)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles get, update and delete requests on /api/drivers/{id}
func (h *DriverHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/drivers/")
	if id == "" {
		http.Error(w, "Driver ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		driver, err := h.drivers.FindDriverByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Driver not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, driver)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		if err := h.drivers.DeleteDriver(r.Context(), id); err != nil {
			http.Error(w, "Failed to delete driver", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Driver deleted"})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DriverHandler) create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var driver models.Driver
	if err := json.Unmarshal(body, &driver); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(driver.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	// Names collapse to one driver, matching the ingestion contract.
	if existing, err := h.drivers.FindDriverByName(r.Context(), driver.Name); err == nil {
		writeJSON(w, http.StatusOK, existing)
		return
	}

	driver.ID = primitive.NewObjectID()
	if err := h.drivers.InsertDriver(r.Context(), driver); err != nil {
		log.WithError(err).Error("Failed to create driver")
		http.Error(w, "Failed to create driver", http.StatusInternalServerError)
		return
	}

	log.WithFields(log.Fields{
		"driver_id": driver.ID.Hex(),
		"name":      driver.Name,
	}).Info("Created driver")

	writeJSON(w, http.StatusCreated, driver)
}

func (h *DriverHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var driver models.Driver
	if err := json.Unmarshal(body, &driver); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(driver.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.drivers.UpdateDriver(r.Context(), id, driver); err != nil {
		http.Error(w, "Failed to update driver", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Driver updated"})
}
