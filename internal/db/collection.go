package db

import (
	"context"
	"github.com/bmekki/fleet-analytics/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// TruckCollection defines the interface for truck data operations.
type TruckCollection interface {
	InsertTruck(ctx context.Context, truck models.Truck) error
	FindTrucks(ctx context.Context, filter bson.M) ([]models.Truck, error)
	FindTruckByID(ctx context.Context, id string) (*models.Truck, error)
	FindTruckByPlate(ctx context.Context, plate string) (*models.Truck, error)
	UpdateTruck(ctx context.Context, id string, truck models.Truck) error
	DeleteTruck(ctx context.Context, id string) error
}

// DriverCollection defines the interface for driver data operations.
type DriverCollection interface {
	InsertDriver(ctx context.Context, driver models.Driver) error
	FindDrivers(ctx context.Context, filter bson.M) ([]models.Driver, error)
	FindDriverByID(ctx context.Context, id string) (*models.Driver, error)
	FindDriverByName(ctx context.Context, name string) (*models.Driver, error)
	UpdateDriver(ctx context.Context, id string, driver models.Driver) error
	DeleteDriver(ctx context.Context, id string) error
}

// TripRecordCollection defines the interface for trip record data operations.
type TripRecordCollection interface {
	InsertRecord(ctx context.Context, record models.TripRecord) error
	FindRecords(ctx context.Context, filter bson.M) ([]models.TripRecord, error)
	FindRecordByID(ctx context.Context, id string) (*models.TripRecord, error)
	UpdateRecord(ctx context.Context, id string, record models.TripRecord) error
	DeleteRecord(ctx context.Context, id string) error
}
