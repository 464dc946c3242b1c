package main

import (
	"venued/internal/admissions/events"
	"venued/internal/admissions/handler"
	lockrepo "venued/internal/admissions/repository"
	"venued/internal/admissions/service"
	"venued/internal/admissions/validator"
	reservationrepo "venued/internal/reservations/repository"
	venuerepo "venued/internal/venues/repository"
	venuevalidator "venued/internal/venues/validator"
	"venued/pkg/app"
	"venued/pkg/config"
	"venued/pkg/kafka"
	kafka_config "venued/pkg/kafka/config"
)

const ServiceName = "admissions"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()

	cfg.Log.Info("Starting Admissions service")
	cfg.SetMongo()

	producer := initProducer(cfg)
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	admissionService := initServices(cfg, producer)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAdmissionHandler(admissionService, cfg.Log))
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, events.Topic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized", "topic", events.Topic)
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.AdmissionService {
	reservationValidator := validator.NewReservationValidator(cfg.Log)
	venueValidator := venuevalidator.NewVenueValidator(cfg.Log)
	venueRepo := venuerepo.NewMongoVenueRepository(cfg)
	reservationRepo := reservationrepo.NewMongoReservationRepository(cfg)
	venueLockRepo := lockrepo.NewMongoVenueLockRepository(cfg)
	publisher := events.NewKafkaPublisher(producer, cfg.Log)

	admissionService := service.NewAdmissionService(
		reservationRepo,
		venueRepo,
		venueLockRepo,
		reservationValidator,
		venueValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Admission service initialized", "database", cfg.MongoDatabaseName)
	return admissionService
}
