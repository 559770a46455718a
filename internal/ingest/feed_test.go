package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bmekki/fleet-analytics/internal/db"
	"github.com/bmekki/fleet-analytics/internal/models"
)

func TestNormalizeAppliesFuelPriceDefault(t *testing.T) {
	msg := &RecordMessage{TruckPlate: " 145 TU 2230 ", Date: "2025-03-14", Distance: 100}
	Normalize(msg)

	assert.Equal(t, "145 TU 2230", msg.TruckPlate)
	assert.Equal(t, DefaultFuelUnitPrice, msg.FuelUnitPrice)

	priced := &RecordMessage{TruckPlate: "x", FuelUnitPrice: 2.5}
	Normalize(priced)
	assert.Equal(t, 2.5, priced.FuelUnitPrice, "an explicit price must not be overwritten")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		msg    RecordMessage
		reason string
	}{
		{"valid", RecordMessage{TruckPlate: "p", Date: "2025-03-14", Distance: 10}, ""},
		{"missing plate", RecordMessage{Date: "2025-03-14", Distance: 10}, "missing truck plate"},
		{"bad date", RecordMessage{TruckPlate: "p", Date: "14/03/2025", Distance: 10}, "date is not YYYY-MM-DD"},
		{"negative fuel", RecordMessage{TruckPlate: "p", Date: "2025-03-14", FuelQuantity: -1, Distance: 10}, "negative numeric field"},
		{"non-activity", RecordMessage{TruckPlate: "p", Date: "2025-03-14"}, "no activity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reason, Validate(&tt.msg))
		})
	}
}

func TestNewTruckFor(t *testing.T) {
	truck := NewTruckFor("198 TU 7741", "tanker")
	assert.Equal(t, models.CategoryTanker, truck.Category)
	assert.Equal(t, 200.0, truck.FixedCost())

	fallback := NewTruckFor("198 TU 7742", "hovercraft")
	assert.Equal(t, models.CategoryFlatbed, fallback.Category)
}

// In-memory collections backing Feed.Ingest tests.

type memTrucks struct {
	byPlate map[string]models.Truck
}

func (m *memTrucks) InsertTruck(ctx context.Context, truck models.Truck) error {
	m.byPlate[truck.Plate] = truck
	return nil
}

func (m *memTrucks) FindTrucks(ctx context.Context, filter bson.M) ([]models.Truck, error) {
	return nil, nil
}

func (m *memTrucks) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	return nil, errors.New("not implemented")
}

func (m *memTrucks) FindTruckByPlate(ctx context.Context, plate string) (*models.Truck, error) {
	if t, ok := m.byPlate[plate]; ok {
		return &t, nil
	}
	return nil, errors.New("not found")
}

func (m *memTrucks) UpdateTruck(ctx context.Context, id string, truck models.Truck) error { return nil }
func (m *memTrucks) DeleteTruck(ctx context.Context, id string) error                     { return nil }

type memDrivers struct {
	byName map[string]models.Driver
}

func (m *memDrivers) InsertDriver(ctx context.Context, driver models.Driver) error {
	m.byName[driver.Name] = driver
	return nil
}

func (m *memDrivers) FindDrivers(ctx context.Context, filter bson.M) ([]models.Driver, error) {
	return nil, nil
}

func (m *memDrivers) FindDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	return nil, errors.New("not implemented")
}

func (m *memDrivers) FindDriverByName(ctx context.Context, name string) (*models.Driver, error) {
	if d, ok := m.byName[name]; ok {
		return &d, nil
	}
	return nil, errors.New("not found")
}

func (m *memDrivers) UpdateDriver(ctx context.Context, id string, driver models.Driver) error {
	return nil
}
func (m *memDrivers) DeleteDriver(ctx context.Context, id string) error { return nil }

type memRecords struct {
	inserted []models.TripRecord
}

func (m *memRecords) InsertRecord(ctx context.Context, record models.TripRecord) error {
	m.inserted = append(m.inserted, record)
	return nil
}

func (m *memRecords) FindRecords(ctx context.Context, filter bson.M) ([]models.TripRecord, error) {
	return m.inserted, nil
}

func (m *memRecords) FindRecordByID(ctx context.Context, id string) (*models.TripRecord, error) {
	return nil, errors.New("not implemented")
}

func (m *memRecords) UpdateRecord(ctx context.Context, id string, record models.TripRecord) error {
	return nil
}
func (m *memRecords) DeleteRecord(ctx context.Context, id string) error { return nil }

func testFeed() (*Feed, *memTrucks, *memDrivers, *memRecords) {
	trucks := &memTrucks{byPlate: map[string]models.Truck{}}
	drivers := &memDrivers{byName: map[string]models.Driver{}}
	records := &memRecords{}
	feed := &Feed{collections: &db.Collections{Trucks: trucks, Drivers: drivers, Records: records}}
	return feed, trucks, drivers, records
}

func TestFeedIngest_CreatesTruckAndDriver(t *testing.T) {
	feed, trucks, drivers, records := testFeed()

	msg := &RecordMessage{
		Date:         "2025-03-14",
		TruckPlate:   "145 TU 2230",
		DriverName:   "Hedi Baccar",
		Region:       "Sfax",
		Delegation:   "Agareb",
		Distance:     180,
		FuelQuantity: 60,
		Revenue:      700,
	}

	record, err := feed.Ingest(context.Background(), msg)
	require.NoError(t, err)
	require.NotNil(t, record)

	truck, ok := trucks.byPlate["145 TU 2230"]
	require.True(t, ok, "truck should be created on first sight")
	assert.Equal(t, DefaultDailyFixedCharge, truck.DailyFixedCharge)
	assert.Equal(t, truck.ID.Hex(), record.TruckID)

	driver, ok := drivers.byName["Hedi Baccar"]
	require.True(t, ok)
	assert.Equal(t, driver.ID.Hex(), record.DriverID)

	assert.Equal(t, DefaultFuelUnitPrice, record.FuelUnitPrice)
	assert.Len(t, records.inserted, 1)
}

func TestFeedIngest_ReusesExistingTruck(t *testing.T) {
	feed, trucks, _, _ := testFeed()

	existing := models.Truck{ID: primitive.NewObjectID(), Plate: "201 TU 8812", DailyFixedCharge: 120}
	trucks.byPlate[existing.Plate] = existing

	record, err := feed.Ingest(context.Background(), &RecordMessage{
		Date:       "2025-03-14",
		TruckPlate: "201 TU 8812",
		Region:     "Gabes",
		Distance:   90,
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, existing.ID.Hex(), record.TruckID)
	assert.Len(t, trucks.byPlate, 1, "plate is the natural key; no duplicate truck")
}

func TestFeedIngest_FiltersNonActivity(t *testing.T) {
	feed, _, _, records := testFeed()

	record, err := feed.Ingest(context.Background(), &RecordMessage{
		Date:       "2025-03-14",
		TruckPlate: "145 TU 2230",
	})
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Empty(t, records.inserted)
}
