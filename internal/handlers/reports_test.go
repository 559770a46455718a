package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bmekki/fleet-analytics/internal/analytics"
	"github.com/bmekki/fleet-analytics/internal/models"
)

// MockTripRecordCollection is a mock implementation of TripRecordCollection
type MockTripRecordCollection struct {
	mock.Mock
}

func (m *MockTripRecordCollection) InsertRecord(ctx context.Context, record models.TripRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTripRecordCollection) FindRecords(ctx context.Context, filter bson.M) ([]models.TripRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TripRecord), args.Error(1)
}

func (m *MockTripRecordCollection) FindRecordByID(ctx context.Context, id string) (*models.TripRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TripRecord), args.Error(1)
}

func (m *MockTripRecordCollection) UpdateRecord(ctx context.Context, id string, record models.TripRecord) error {
	args := m.Called(ctx, id, record)
	return args.Error(0)
}

func (m *MockTripRecordCollection) DeleteRecord(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTruckCollection is a mock implementation of TruckCollection
type MockTruckCollection struct {
	mock.Mock
}

func (m *MockTruckCollection) InsertTruck(ctx context.Context, truck models.Truck) error {
	args := m.Called(ctx, truck)
	return args.Error(0)
}

func (m *MockTruckCollection) FindTrucks(ctx context.Context, filter bson.M) ([]models.Truck, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Truck), args.Error(1)
}

func (m *MockTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) FindTruckByPlate(ctx context.Context, plate string) (*models.Truck, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) UpdateTruck(ctx context.Context, id string, truck models.Truck) error {
	args := m.Called(ctx, id, truck)
	return args.Error(0)
}

func (m *MockTruckCollection) DeleteTruck(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestReportHandler_TruckReport(t *testing.T) {
	truckID := primitive.NewObjectID()
	truck := models.Truck{
		ID:               truckID,
		Plate:            "145 TU 2230",
		Category:         models.CategoryFlatbed,
		DailyFixedCharge: 80,
		InsuranceShare:   20,
		TaxShare:         20,
		PersonnelCharge:  80,
	}
	records := []models.TripRecord{
		{
			TruckID:         truckID.Hex(),
			Date:            "2025-03-14",
			Region:          "Sfax",
			Distance:        200,
			FuelQuantity:    50,
			FuelUnitPrice:   2,
			MaintenanceCost: 10,
			Revenue:         500,
		},
	}

	mockRecords := new(MockTripRecordCollection)
	mockRecords.On("FindRecords", mock.Anything, bson.M{"truck_id": truckID.Hex()}).Return(records, nil)
	mockTrucks := new(MockTruckCollection)
	mockTrucks.On("FindTrucks", mock.Anything, mock.Anything).Return([]models.Truck{truck}, nil)

	handler := NewReportHandler(mockRecords, mockTrucks)

	req := httptest.NewRequest("GET", "/api/reports/trucks/"+truckID.Hex(), nil)
	w := httptest.NewRecorder()
	handler.TruckReport(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats analytics.Stats
	err := json.Unmarshal(w.Body.Bytes(), &stats)
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.TripCount)
	assert.Equal(t, 310.0, stats.TotalCost)
	assert.Equal(t, 190.0, stats.Result)
	assert.InDelta(t, 38.0, stats.PerformanceRatio, 1e-9)

	mockRecords.AssertExpectations(t)
	mockTrucks.AssertExpectations(t)
}

func TestReportHandler_DriverReportSpansTrucks(t *testing.T) {
	truckID := primitive.NewObjectID()
	truck := models.Truck{ID: truckID, Plate: "201 TU 8812", DailyFixedCharge: 80, InsuranceShare: 20, TaxShare: 20, PersonnelCharge: 80}
	records := []models.TripRecord{
		{TruckID: truckID.Hex(), DriverID: "d1", Date: "2025-03-14", Distance: 100, FuelQuantity: 20, FuelUnitPrice: 2, Revenue: 300},
		// Orphaned record: its truck was deleted, so only fuel counts.
		{TruckID: "gone", DriverID: "d1", Date: "2025-03-15", Distance: 60, FuelQuantity: 18, FuelUnitPrice: 2, Revenue: 150},
	}

	mockRecords := new(MockTripRecordCollection)
	mockRecords.On("FindRecords", mock.Anything, bson.M{"driver_id": "d1"}).Return(records, nil)
	mockTrucks := new(MockTruckCollection)
	mockTrucks.On("FindTrucks", mock.Anything, mock.Anything).Return([]models.Truck{truck}, nil)

	handler := NewReportHandler(mockRecords, mockTrucks)

	req := httptest.NewRequest("GET", "/api/reports/drivers/d1", nil)
	w := httptest.NewRecorder()
	handler.DriverReport(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats analytics.Stats
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TripCount)
	assert.Equal(t, 160.0, stats.TotalDistance)
	// 40 + 200 fixed for the first record, 36 fuel only for the orphan.
	assert.Equal(t, 276.0, stats.TotalCost)
}

func TestReportHandler_EmptyRecordSet(t *testing.T) {
	mockRecords := new(MockTripRecordCollection)
	mockRecords.On("FindRecords", mock.Anything, mock.Anything).Return([]models.TripRecord{}, nil)
	mockTrucks := new(MockTruckCollection)
	mockTrucks.On("FindTrucks", mock.Anything, mock.Anything).Return([]models.Truck{}, nil)

	handler := NewReportHandler(mockRecords, mockTrucks)

	req := httptest.NewRequest("GET", "/api/reports/trucks/unknown", nil)
	w := httptest.NewRecorder()
	handler.TruckReport(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats analytics.Stats
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, analytics.Stats{}, stats)
}

func TestReportHandler_MissingID(t *testing.T) {
	handler := NewReportHandler(new(MockTripRecordCollection), new(MockTruckCollection))

	req := httptest.NewRequest("GET", "/api/reports/trucks/", nil)
	w := httptest.NewRecorder()
	handler.TruckReport(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
