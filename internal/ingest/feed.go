package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bmekki/fleet-analytics/internal/db"
	"github.com/bmekki/fleet-analytics/internal/models"
)

// RecordTopic is the MQTT topic daily trip rows arrive on.
const RecordTopic = "fleet/records"

// Feed consumes trip record messages from an MQTT broker and persists them.
// On-site entry stations and the import tooling publish rows here instead of
// talking to the HTTP API directly.
type Feed struct {
	client      mqtt.Client
	collections *db.Collections
}

// NewFeed creates a feed for the given broker URL.
func NewFeed(brokerURL string, collections *db.Collections) *Feed {
	feed := &Feed{collections: collections}

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("fleet-analytics-ingest").
		SetAutoReconnect(true).
		SetConnectRetry(true)
	opts.OnConnect = func(client mqtt.Client) {
		if token := client.Subscribe(RecordTopic, 1, feed.handleMessage); token.Wait() && token.Error() != nil {
			log.WithError(token.Error()).Error("Failed to subscribe to record topic")
			return
		}
		log.WithField("topic", RecordTopic).Info("Subscribed to record feed")
	}

	feed.client = mqtt.NewClient(opts)
	return feed
}

// Start connects to the broker; the subscription is re-established on every
// reconnect.
func (f *Feed) Start() error {
	if token := f.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return nil
}

// Stop disconnects from the broker.
func (f *Feed) Stop() {
	f.client.Disconnect(250)
}

func (f *Feed) handleMessage(_ mqtt.Client, m mqtt.Message) {
	var msg RecordMessage
	if err := json.Unmarshal(m.Payload(), &msg); err != nil {
		log.WithError(err).Warn("Dropping malformed record message")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record, err := f.Ingest(ctx, &msg)
	if err != nil {
		log.WithError(err).WithField("plate", msg.TruckPlate).Error("Failed to ingest record")
		return
	}
	if record == nil {
		return // filtered out
	}

	log.WithFields(log.Fields{
		"record_id": record.ID.Hex(),
		"plate":     msg.TruckPlate,
		"date":      record.Date,
	}).Info("Ingested trip record")
}

// Ingest normalizes one feed message, resolves its truck and driver by their
// natural keys (creating them on first sight) and persists the trip record.
// A nil record with nil error means the row was filtered out.
func (f *Feed) Ingest(ctx context.Context, msg *RecordMessage) (*models.TripRecord, error) {
	Normalize(msg)
	if reason := Validate(msg); reason != "" {
		log.WithFields(log.Fields{
			"plate":  msg.TruckPlate,
			"date":   msg.Date,
			"reason": reason,
		}).Debug("Skipping record message")
		return nil, nil
	}

	truckID, err := f.resolveTruck(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("resolve truck %q: %w", msg.TruckPlate, err)
	}

	driverID, err := f.resolveDriver(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("resolve driver %q: %w", msg.DriverName, err)
	}

	record := models.TripRecord{
		ID:              primitive.NewObjectID(),
		Date:            msg.Date,
		TruckID:         truckID,
		DriverID:        driverID,
		Region:          msg.Region,
		Delegation:      msg.Delegation,
		Distance:        msg.Distance,
		FuelQuantity:    msg.FuelQuantity,
		FuelUnitPrice:   msg.FuelUnitPrice,
		MaintenanceCost: msg.MaintenanceCost,
		Revenue:         msg.Revenue,
		Remarks:         msg.Remarks,
	}
	if err := f.collections.Records.InsertRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	return &record, nil
}

// resolveTruck finds the truck by plate or creates it with default fixed costs.
func (f *Feed) resolveTruck(ctx context.Context, msg *RecordMessage) (string, error) {
	if existing, err := f.collections.Trucks.FindTruckByPlate(ctx, msg.TruckPlate); err == nil {
		return existing.ID.Hex(), nil
	}

	truck := NewTruckFor(msg.TruckPlate, msg.TruckCategory)
	truck.ID = primitive.NewObjectID()
	if err := f.collections.Trucks.InsertTruck(ctx, truck); err != nil {
		return "", err
	}
	return truck.ID.Hex(), nil
}

// resolveDriver finds the driver by name or creates them; duplicate names
// collapse to one driver. An empty name stays an empty reference.
func (f *Feed) resolveDriver(ctx context.Context, msg *RecordMessage) (string, error) {
	if msg.DriverName == "" {
		return "", nil
	}
	if existing, err := f.collections.Drivers.FindDriverByName(ctx, msg.DriverName); err == nil {
		return existing.ID.Hex(), nil
	}

	driver := models.Driver{ID: primitive.NewObjectID(), Name: msg.DriverName}
	if err := f.collections.Drivers.InsertDriver(ctx, driver); err != nil {
		return "", err
	}
	return driver.ID.Hex(), nil
}
