package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Driver represents a fleet driver.
// AssignedTruckID is a non-owning association; a driver may be unassigned.
type Driver struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"` // natural key at ingestion
	AssignedTruckID string             `bson:"assigned_truck_id,omitempty" json:"assigned_truck_id,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
