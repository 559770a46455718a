package db

import (
	"context"
	"fmt"
	"time"

	"github.com/bmekki/fleet-analytics/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTruckCollection implements TruckCollection for MongoDB
type MongoTruckCollection struct {
	Collection *mongo.Collection
}

// InsertTruck inserts a new truck into the database
func (c *MongoTruckCollection) InsertTruck(ctx context.Context, truck models.Truck) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	truck.CreatedAt = time.Now()
	truck.UpdatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, truck)
	return err
}

// FindTrucks finds trucks with optional filtering
func (c *MongoTruckCollection) FindTrucks(ctx context.Context, filter bson.M) ([]models.Truck, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := c.Collection.Find(ctx, filter, options.Find().SetSort(bson.M{"plate": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trucks []models.Truck
	if err := cursor.All(ctx, &trucks); err != nil {
		return nil, err
	}
	return trucks, nil
}

// FindTruckByID finds a truck by its ID
func (c *MongoTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var truck models.Truck
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&truck)
	if err != nil {
		return nil, err
	}

	return &truck, nil
}

// FindTruckByPlate finds a truck by its registration plate.
// The plate is the natural key during ingestion.
func (c *MongoTruckCollection) FindTruckByPlate(ctx context.Context, plate string) (*models.Truck, error) {
	var truck models.Truck
	err := c.Collection.FindOne(ctx, bson.M{"plate": plate}).Decode(&truck)
	if err != nil {
		return nil, err
	}

	return &truck, nil
}

// UpdateTruck updates a truck in the database
func (c *MongoTruckCollection) UpdateTruck(ctx context.Context, id string, truck models.Truck) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	truck.UpdatedAt = time.Now()
	truck.ID = objectID

	_, err = c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, truck)
	return err
}

// DeleteTruck deletes a truck from the database. Trip records referencing the
// truck are left in place; the analytics layer tolerates the orphaned
// reference by charging zero fixed cost.
func (c *MongoTruckCollection) DeleteTruck(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

// MongoDriverCollection implements DriverCollection for MongoDB
type MongoDriverCollection struct {
	Collection *mongo.Collection
}

// InsertDriver inserts a new driver into the database
func (c *MongoDriverCollection) InsertDriver(ctx context.Context, driver models.Driver) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	driver.CreatedAt = time.Now()
	driver.UpdatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, driver)
	return err
}

// FindDrivers finds drivers with optional filtering
func (c *MongoDriverCollection) FindDrivers(ctx context.Context, filter bson.M) ([]models.Driver, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := c.Collection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var drivers []models.Driver
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}

// FindDriverByID finds a driver by their ID
func (c *MongoDriverCollection) FindDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var driver models.Driver
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&driver)
	if err != nil {
		return nil, err
	}

	return &driver, nil
}

// FindDriverByName finds a driver by display name.
// The name is the natural key during ingestion; duplicates collapse to one driver.
func (c *MongoDriverCollection) FindDriverByName(ctx context.Context, name string) (*models.Driver, error) {
	var driver models.Driver
	err := c.Collection.FindOne(ctx, bson.M{"name": name}).Decode(&driver)
	if err != nil {
		return nil, err
	}

	return &driver, nil
}

// UpdateDriver updates a driver in the database
func (c *MongoDriverCollection) UpdateDriver(ctx context.Context, id string, driver models.Driver) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	driver.UpdatedAt = time.Now()
	driver.ID = objectID

	_, err = c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, driver)
	return err
}

// DeleteDriver deletes a driver from the database
func (c *MongoDriverCollection) DeleteDriver(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

// MongoTripRecordCollection implements TripRecordCollection for MongoDB
type MongoTripRecordCollection struct {
	Collection *mongo.Collection
}

// InsertRecord inserts a new trip record into the database
func (c *MongoTripRecordCollection) InsertRecord(ctx context.Context, record models.TripRecord) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, record)
	return err
}

// FindRecords finds trip records with optional filtering, newest day first
func (c *MongoTripRecordCollection) FindRecords(ctx context.Context, filter bson.M) ([]models.TripRecord, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := c.Collection.Find(ctx, filter, options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.TripRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindRecordByID finds a trip record by its ID
func (c *MongoTripRecordCollection) FindRecordByID(ctx context.Context, id string) (*models.TripRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var record models.TripRecord
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&record)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// UpdateRecord updates a trip record in the database
func (c *MongoTripRecordCollection) UpdateRecord(ctx context.Context, id string, record models.TripRecord) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	record.UpdatedAt = time.Now()
	record.ID = objectID

	_, err = c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, record)
	return err
}

// DeleteRecord deletes a trip record from the database
func (c *MongoTripRecordCollection) DeleteRecord(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
