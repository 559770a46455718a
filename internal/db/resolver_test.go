package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmekki/fleet-analytics/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubTruckCollection serves a fixed truck list without a database.
type stubTruckCollection struct {
	trucks  []models.Truck
	findErr error
}

func (s *stubTruckCollection) InsertTruck(ctx context.Context, truck models.Truck) error {
	return nil
}

func (s *stubTruckCollection) FindTrucks(ctx context.Context, filter bson.M) ([]models.Truck, error) {
	return s.trucks, s.findErr
}

func (s *stubTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTruckCollection) FindTruckByPlate(ctx context.Context, plate string) (*models.Truck, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTruckCollection) UpdateTruck(ctx context.Context, id string, truck models.Truck) error {
	return nil
}

func (s *stubTruckCollection) DeleteTruck(ctx context.Context, id string) error {
	return nil
}

func TestTruckResolverFrom(t *testing.T) {
	id := primitive.NewObjectID()
	stub := &stubTruckCollection{trucks: []models.Truck{
		{ID: id, Plate: "145 TU 2230", DailyFixedCharge: 80, InsuranceShare: 20, TaxShare: 20, PersonnelCharge: 80},
	}}

	resolve, err := TruckResolverFrom(context.Background(), stub)
	require.NoError(t, err)

	truck, ok := resolve(id.Hex())
	assert.True(t, ok)
	assert.Equal(t, "145 TU 2230", truck.Plate)

	_, ok = resolve(primitive.NewObjectID().Hex())
	assert.False(t, ok, "deleted truck must resolve to absent, not an error")
}

func TestTruckResolverFrom_LoadError(t *testing.T) {
	stub := &stubTruckCollection{findErr: errors.New("connection reset")}

	_, err := TruckResolverFrom(context.Background(), stub)
	assert.Error(t, err)
}
