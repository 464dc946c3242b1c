package main

import (
	"venued/internal/venues/handler"
	"venued/internal/venues/repository"
	"venued/internal/venues/service"
	"venued/internal/venues/validator"
	"venued/pkg/app"
	"venued/pkg/config"
)

const ServiceName = "venues"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()

	cfg.Log.Info("Starting Venues service")
	cfg.SetMongo()

	venueService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewVenueHandler(venueService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.VenueService {
	venueValidator := validator.NewVenueValidator(cfg.Log)
	venueRepo := repository.NewMongoVenueRepository(cfg)
	venueService := service.NewVenueService(
		venueRepo,
		venueValidator,
		cfg,
	)

	cfg.Log.Info("Venue service initialized", "database", cfg.MongoDatabaseName)
	return venueService
}
