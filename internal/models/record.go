package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// DateLayout is the sortable calendar-day form trip record dates are stored in.
const DateLayout = "2006-01-02"

// TripRecord represents one day's activity entry for one truck.
type TripRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date            string             `bson:"date" json:"date"` // YYYY-MM-DD
	TruckID         string             `bson:"truck_id" json:"truck_id"`
	DriverID        string             `bson:"driver_id,omitempty" json:"driver_id,omitempty"`
	Region          string             `bson:"region" json:"region"`         // governorate
	Delegation      string             `bson:"delegation,omitempty" json:"delegation,omitempty"`
	Distance        float64            `bson:"distance" json:"distance"`                 // in kilometers
	FuelQuantity    float64            `bson:"fuel_quantity" json:"fuel_quantity"`       // in liters
	FuelUnitPrice   float64            `bson:"fuel_unit_price" json:"fuel_unit_price"`   // per liter
	MaintenanceCost float64            `bson:"maintenance_cost" json:"maintenance_cost"`
	Revenue         float64            `bson:"revenue" json:"revenue"`
	Remarks         string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsActivity reports whether the record carries any activity.
// A record with zero distance, zero fuel and zero revenue is a non-activity
// day and is never persisted.
func (r *TripRecord) IsActivity() bool {
	return r.Distance != 0 || r.FuelQuantity != 0 || r.Revenue != 0
}
