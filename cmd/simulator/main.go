package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/bmekki/fleet-analytics/internal/geo"
	"github.com/bmekki/fleet-analytics/internal/ingest"
)

// Generates realistic daily trip activity for a fleet and feeds it into the
// system, either over the MQTT record feed or the HTTP API. Useful for demos
// and for exercising the report endpoints with a populated record set.

var categories = []string{"flatbed", "tipper", "tanker", "box", "refrigerated"}

// Liters per 100 km and revenue per km by category.
var categoryProfiles = map[string]struct {
	Consumption float64
	RatePerKm   float64
}{
	"flatbed":      {Consumption: 28, RatePerKm: 3.2},
	"tipper":       {Consumption: 34, RatePerKm: 3.6},
	"tanker":       {Consumption: 32, RatePerKm: 4.0},
	"box":          {Consumption: 25, RatePerKm: 2.8},
	"refrigerated": {Consumption: 30, RatePerKm: 4.4},
}

var delegationsByRegion = map[string][]string{
	"Tunis":    {"Le Bardo", "La Marsa", "Carthage", "El Omrane"},
	"Bizerte":  {"Menzel Bourguiba", "Mateur", "Ras Jebel"},
	"Nabeul":   {"Hammamet", "Kelibia", "Grombalia", "Korba"},
	"Sousse":   {"Msaken", "Kalaa Kebira", "Enfidha"},
	"Kairouan": {"Haffouz", "Sbikha", "Oueslatia"},
	"Sfax":     {"Agareb", "Jebeniana", "Mahres", "Sakiet Ezzit"},
	"Gabes":    {"Mareth", "Metouia", "El Hamma"},
	"Medenine": {"Zarzis", "Ben Gardane", "Houmt Souk"},
	"Gafsa":    {"Metlaoui", "El Ksar", "Redeyef"},
}

var driverNames = []string{
	"Hedi Baccar", "Mounir Jlassi", "Sami Trabelsi", "Anis Chaabane",
	"Lotfi Gharbi", "Karim Ayadi", "Walid Mansouri", "Nabil Hammami",
	"Fathi Dridi", "Slim Bouazizi",
}

type truckSim struct {
	Plate    string
	Category string
	Driver   string
	Home     string // governorate the truck is based in
}

func randomPlate(r *rand.Rand) string {
	return fmt.Sprintf("%d TU %d", 100+r.Intn(150), 1000+r.Intn(9000))
}

func newFleet(r *rand.Rand, size int) []*truckSim {
	regions := geo.Regions()
	fleet := make([]*truckSim, 0, size)
	for i := 0; i < size; i++ {
		fleet = append(fleet, &truckSim{
			Plate:    randomPlate(r),
			Category: categories[r.Intn(len(categories))],
			Driver:   driverNames[r.Intn(len(driverNames))],
			Home:     regions[r.Intn(len(regions))],
		})
	}
	return fleet
}

// planTrip produces one day's trip row for a truck. The distance starts from
// the engine's own estimate for the chosen destination, with mild noise so
// the data does not look machine-generated.
func planTrip(r *rand.Rand, truck *truckSim, date string) ingest.RecordMessage {
	regions := geo.Regions()
	dest := regions[r.Intn(len(regions))]

	delegation := ""
	if dels, ok := delegationsByRegion[dest]; ok && r.Float64() < 0.7 {
		delegation = dels[r.Intn(len(dels))]
	}

	km := geo.EstimateKm(truck.Home, "", dest, delegation)
	if km == 0 {
		km = 150 + r.Intn(300)
	}
	distance := float64(km) * (0.9 + r.Float64()*0.2)
	distance = float64(int(distance)) // whole kilometers, like manual entry

	profile := categoryProfiles[truck.Category]
	fuel := distance * profile.Consumption / 100 * (0.9 + r.Float64()*0.2)
	revenue := distance * profile.RatePerKm * (0.85 + r.Float64()*0.3)

	maintenance := 0.0
	if r.Float64() < 0.12 {
		maintenance = 20 + r.Float64()*130
	}

	return ingest.RecordMessage{
		Date:            date,
		TruckPlate:      truck.Plate,
		TruckCategory:   truck.Category,
		DriverName:      truck.Driver,
		Region:          dest,
		Delegation:      delegation,
		Distance:        distance,
		FuelQuantity:    float64(int(fuel*10)) / 10,
		FuelUnitPrice:   ingest.DefaultFuelUnitPrice,
		Revenue:         float64(int(revenue)),
		MaintenanceCost: float64(int(maintenance)),
	}
}

func connectBroker(brokerURL string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("fleet-analytics-simulator")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return client, nil
}

func publishRecord(client mqtt.Client, msg ingest.RecordMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	token := client.Publish(ingest.RecordTopic, 1, false, data)
	token.Wait()
	return token.Error()
}

func postRecord(apiURL, authToken string, msg ingest.RecordMessage) error {
	payload := map[string]interface{}{
		"date":             msg.Date,
		"truck_id":         msg.TruckPlate, // plates double as identifiers when posting directly
		"driver_id":        "",
		"region":           msg.Region,
		"delegation":       msg.Delegation,
		"distance":         msg.Distance,
		"fuel_quantity":    msg.FuelQuantity,
		"fuel_unit_price":  msg.FuelUnitPrice,
		"maintenance_cost": msg.MaintenanceCost,
		"revenue":          msg.Revenue,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, apiURL+"/records", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("record creation failed with status: %d", resp.StatusCode)
	}
	return nil
}

func main() {
	fleetSize := 8
	if val := os.Getenv("FLEET_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			fleetSize = n
		}
	}

	days := 30
	if val := os.Getenv("SIM_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			days = n
		}
	}

	brokerURL := os.Getenv("MQTT_BROKER")
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}
	authToken := os.Getenv("SIM_AUTH_TOKEN")

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	fleet := newFleet(r, fleetSize)

	log.WithFields(log.Fields{
		"fleet_size": len(fleet),
		"days":       days,
		"broker":     brokerURL,
		"api_url":    apiURL,
	}).Info("Starting fleet activity simulation")

	var client mqtt.Client
	if brokerURL != "" {
		var err error
		client, err = connectBroker(brokerURL)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to MQTT broker")
		}
		defer client.Disconnect(250)
	}

	sent := 0
	for d := days - 1; d >= 0; d-- {
		date := time.Now().AddDate(0, 0, -d).Format("2006-01-02")
		for _, truck := range fleet {
			// Roughly one rest day per week.
			if r.Float64() < 0.15 {
				continue
			}

			msg := planTrip(r, truck, date)

			var err error
			if client != nil {
				err = publishRecord(client, msg)
			} else {
				err = postRecord(apiURL, authToken, msg)
			}
			if err != nil {
				log.WithError(err).WithFields(log.Fields{
					"plate": truck.Plate,
					"date":  date,
				}).Error("Failed to send record")
				continue
			}
			sent++
		}
	}

	log.WithField("records_sent", sent).Info("Fleet activity simulation completed")
}
