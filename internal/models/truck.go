package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// TruckCategory is the closed set of vehicle categories the fleet operates.
type TruckCategory string

const (
	CategoryFlatbed      TruckCategory = "flatbed"
	CategoryTipper       TruckCategory = "tipper"
	CategoryTanker       TruckCategory = "tanker"
	CategoryBox          TruckCategory = "box"
	CategoryRefrigerated TruckCategory = "refrigerated"
)

// IsValidCategory checks if a vehicle category is valid
func IsValidCategory(c TruckCategory) bool {
	switch c {
	case CategoryFlatbed, CategoryTipper, CategoryTanker, CategoryBox, CategoryRefrigerated:
		return true
	default:
		return false
	}
}

// Truck represents a fleet truck with its fixed-cost profile.
// The four fixed-cost fields are daily amounts charged in full to every
// trip record of the truck; they are never prorated across same-day trips.
type Truck struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Plate            string             `bson:"plate" json:"plate"` // registration, natural key at ingestion
	Category         TruckCategory      `bson:"category" json:"category"`
	DailyFixedCharge float64            `bson:"daily_fixed_charge" json:"daily_fixed_charge"`
	InsuranceShare   float64            `bson:"insurance_share" json:"insurance_share"`
	TaxShare         float64            `bson:"tax_share" json:"tax_share"`
	PersonnelCharge  float64            `bson:"personnel_charge" json:"personnel_charge"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// FixedCost returns the truck's daily fixed-cost bundle.
func (t *Truck) FixedCost() float64 {
	return t.DailyFixedCharge + t.InsuranceShare + t.TaxShare + t.PersonnelCharge
}
