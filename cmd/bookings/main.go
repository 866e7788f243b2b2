package main

import (
	bookingshandler "bookit/internal/bookings/handler"
	bookingsrepo "bookit/internal/bookings/repository"
	bookingsservice "bookit/internal/bookings/service"
	bookingsvalidator "bookit/internal/bookings/validator"
	facilitiesrepo "bookit/internal/facilities/repository"
	usersrepo "bookit/internal/users/repository"
	"bookit/pkg/app"
	"bookit/pkg/config"
	"bookit/pkg/kafka"
	kafka_config "bookit/pkg/kafka/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(bookingshandler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) bookingsservice.BookingService {
	bookingValidator := bookingsvalidator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	facilityRepo := facilitiesrepo.NewMongoFacilityRepository(cfg)
	userRepo := usersrepo.NewMongoUserRepository(cfg)

	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		bookingsrepo.NewSlotLocker(),
		userRepo,
		facilityRepo,
		bookingValidator,
		initEventPublisher(cfg),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initEventPublisher(cfg *config.Config) bookingsservice.EventPublisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return bookingsservice.NewNoopEventPublisher()
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Booking event publisher initialized", "topic", cfg.EventsTopic)
	return bookingsservice.NewKafkaEventPublisher(producer, cfg.Log)
}
