package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/bmekki/fleet-analytics/internal/auth"
	"github.com/bmekki/fleet-analytics/internal/db"
	"github.com/bmekki/fleet-analytics/internal/handlers"
	"github.com/bmekki/fleet-analytics/internal/ingest"
	"github.com/bmekki/fleet-analytics/internal/middleware"
)

// main is the application composition root: it wires the Mongo-backed record
// store, the authentication stack and the analytics/estimation handlers, and
// optionally attaches the MQTT ingestion feed.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	log.Info("Connected to MongoDB")

	collections := db.NewCollections(client, getEnv("MONGO_DB", "fleet"))

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to create auth service")
	}

	authHandler := handlers.NewAuthHandler(authService, collections.Users)
	truckHandler := handlers.NewTruckHandler(collections.Trucks)
	driverHandler := handlers.NewDriverHandler(collections.Drivers)
	recordHandler := handlers.NewRecordHandler(collections.Records)
	reportHandler := handlers.NewReportHandler(collections.Records, collections.Trucks)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/profile", authHandler.GetProfile)
	mux.HandleFunc("/api/auth/profile/update", authHandler.UpdateProfile)
	mux.HandleFunc("/api/auth/change-password", authHandler.ChangePassword)

	mux.HandleFunc("/api/trucks", truckHandler.Collection)
	mux.HandleFunc("/api/trucks/", truckHandler.Item)
	mux.HandleFunc("/api/drivers", driverHandler.Collection)
	mux.HandleFunc("/api/drivers/", driverHandler.Item)
	mux.HandleFunc("/api/records", recordHandler.Collection)
	mux.HandleFunc("/api/records/", recordHandler.Item)

	mux.Handle("/api/reports/trucks/",
		authMiddleware.RequirePermission("view_reports")(http.HandlerFunc(reportHandler.TruckReport)))
	mux.Handle("/api/reports/drivers/",
		authMiddleware.RequirePermission("view_reports")(http.HandlerFunc(reportHandler.DriverReport)))

	mux.Handle("/api/distance",
		authMiddleware.RequirePermission("estimate_distance")(http.HandlerFunc(handlers.EstimateDistance)))
	mux.HandleFunc("/api/regions", handlers.ListRegions)

	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		feed := ingest.NewFeed(broker, collections)
		if err := feed.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start record feed")
		}
		defer feed.Stop()
		log.WithField("broker", broker).Info("Record feed started")
	}

	handler := rateLimiter.RateLimit(100, 60)(authMiddleware.Authenticate(mux))

	port := getEnv("PORT", "8080")
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
