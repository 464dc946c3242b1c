package main

import (
	"venued/internal/availability/handler"
	"venued/internal/availability/service"
	reservationrepo "venued/internal/reservations/repository"
	venuerepo "venued/internal/venues/repository"
	"venued/pkg/app"
	"venued/pkg/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()

	cfg.Log.Info("Starting Availability service")
	cfg.SetMongo()

	availabilityService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAvailabilityHandler(availabilityService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AvailabilityService {
	venueRepo := venuerepo.NewMongoVenueRepository(cfg)
	reservationRepo := reservationrepo.NewMongoReservationRepository(cfg)
	availabilityService := service.NewAvailabilityService(
		venueRepo,
		reservationRepo,
		cfg,
	)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService
}
