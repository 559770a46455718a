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

// TruckHandler handles truck CRUD requests
type TruckHandler struct {
	trucks db.TruckCollection
}

// NewTruckHandler creates a new truck handler
func NewTruckHandler(trucks db.TruckCollection) *TruckHandler {
	return &TruckHandler{trucks: trucks}
}

// Collection handles list and create requests on /api/trucks
func (h *TruckHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles get, update and delete requests on /api/trucks/{id}
func (h *TruckHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/trucks/")
	if id == "" {
		http.Error(w, "Truck ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		truck, err := h.trucks.FindTruckByID(r.Context(), id)
		if err != nil {
			http.Error(w, "Truck not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, truck)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		if err := h.trucks.DeleteTruck(r.Context(), id); err != nil {
			http.Error(w, "Failed to delete truck", http.StatusInternalServerError)
			return
		}
		// Trip records referencing the truck stay behind; reports charge
		// them zero fixed cost from now on.
		writeJSON(w, http.StatusOK, map[string]string{"message": "Truck deleted"})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TruckHandler) list(w http.ResponseWriter, r *http.Request) {
	trucks, err := h.trucks.FindTrucks(r.Context(), nil)
	if err != nil {
		log.WithError(err).Error("Failed to list trucks")
		http.Error(w, "Failed to list trucks", http.StatusInternalServerError)
		return
	}
	if trucks == nil {
		trucks = []models.Truck{}
	}
	writeJSON(w, http.StatusOK, trucks)
}

func (h *TruckHandler) create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var truck models.Truck
	if err := json.Unmarshal(body, &truck); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := validateTruck(&truck); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	truck.ID = primitive.NewObjectID()
	if err := h.trucks.InsertTruck(r.Context(), truck); err != nil {
		log.WithError(err).Error("Failed to create truck")
		http.Error(w, "Failed to create truck", http.StatusInternalServerError)
		return
	}

	log.WithFields(log.Fields{
		"truck_id": truck.ID.Hex(),
		"plate":    truck.Plate,
		"category": truck.Category,
	}).Info("Created truck")

	writeJSON(w, http.StatusCreated, truck)
}

func (h *TruckHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var truck models.Truck
	if err := json.Unmarshal(body, &truck); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := validateTruck(&truck); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.trucks.UpdateTruck(r.Context(), id, truck); err != nil {
		http.Error(w, "Failed to update truck", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Truck updated"})
}

func validateTruck(truck *models.Truck) error {
	if strings.TrimSpace(truck.Plate) == "" {
		return errRequired("plate")
	}
	if !models.IsValidCategory(truck.Category) {
		return errInvalid("category")
	}
	if truck.DailyFixedCharge < 0 || truck.InsuranceShare < 0 || truck.TaxShare < 0 || truck.PersonnelCharge < 0 {
		return errInvalid("fixed costs")
	}
	return nil
}
