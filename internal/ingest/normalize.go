package ingest

import (
	"strings"
	"time"

	"github.com/bmekki/fleet-analytics/internal/models"
)

// Defaults substituted for missing or non-numeric cells upstream. The
// analytics engine never re-applies these; they are the ingestion contract.
const (
	DefaultFuelUnitPrice    = 2.0
	DefaultDailyFixedCharge = 80.0
	DefaultInsuranceShare   = 20.0
	DefaultTaxShare         = 20.0
	DefaultPersonnelCharge  = 80.0
)

// RecordMessage is one trip row on the ingestion feed. Trucks are keyed by
// plate and drivers by display name; both are resolved or created on arrival.
type RecordMessage struct {
	Date            string  `json:"date"`
	TruckPlate      string  `json:"truck_plate"`
	TruckCategory   string  `json:"truck_category,omitempty"`
	DriverName      string  `json:"driver_name,omitempty"`
	Region          string  `json:"region"`
	Delegation      string  `json:"delegation,omitempty"`
	Distance        float64 `json:"distance"`
	FuelQuantity    float64 `json:"fuel_quantity"`
	FuelUnitPrice   float64 `json:"fuel_unit_price,omitempty"`
	MaintenanceCost float64 `json:"maintenance_cost,omitempty"`
	Revenue         float64 `json:"revenue"`
	Remarks         string  `json:"remarks,omitempty"`
}

// Normalize trims the message and fills the contractual defaults.
func Normalize(msg *RecordMessage) {
	msg.TruckPlate = strings.TrimSpace(msg.TruckPlate)
	msg.DriverName = strings.TrimSpace(msg.DriverName)
	msg.Region = strings.TrimSpace(msg.Region)
	msg.Delegation = strings.TrimSpace(msg.Delegation)

	if msg.FuelUnitPrice == 0 {
		msg.FuelUnitPrice = DefaultFuelUnitPrice
	}
}

// Validate reports the first problem with a normalized message, or "".
func Validate(msg *RecordMessage) string {
	if msg.TruckPlate == "" {
		return "missing truck plate"
	}
	if _, err := time.Parse(models.DateLayout, msg.Date); err != nil {
		return "date is not YYYY-MM-DD"
	}
	if msg.Distance < 0 || msg.FuelQuantity < 0 || msg.MaintenanceCost < 0 || msg.Revenue < 0 {
		return "negative numeric field"
	}
	if msg.Distance == 0 && msg.FuelQuantity == 0 && msg.Revenue == 0 {
		// Non-activity day: filtered out, never persisted.
		return "no activity"
	}
	return ""
}

// NewTruckFor builds the truck created for a plate first seen on the feed,
// with the contractual fixed-cost defaults.
func NewTruckFor(plate, category string) models.Truck {
	cat := models.TruckCategory(strings.TrimSpace(category))
	if !models.IsValidCategory(cat) {
		cat = models.CategoryFlatbed
	}
	return models.Truck{
		Plate:            plate,
		Category:         cat,
		DailyFixedCharge: DefaultDailyFixedCharge,
		InsuranceShare:   DefaultInsuranceShare,
		TaxShare:         DefaultTaxShare,
		PersonnelCharge:  DefaultPersonnelCharge,
	}
}
