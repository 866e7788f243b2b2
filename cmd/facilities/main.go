package main

import (
	"bookit/internal/facilities/handler"
	"bookit/internal/facilities/repository"
	"bookit/internal/facilities/service"
	"bookit/internal/facilities/validator"
	"bookit/pkg/app"
	"bookit/pkg/config"
)

const ServiceName = "facilities"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Facilities service")
	facilityService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewFacilityHandler(facilityService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.FacilityService {
	facilityValidator := validator.NewFacilityValidator(cfg.Log)
	facilityRepo := repository.NewMongoFacilityRepository(cfg)
	facilityService := service.NewFacilityService(facilityRepo, facilityValidator, cfg)

	cfg.Log.Info("Facility service initialized", "database", cfg.MongoDatabaseName)
	return facilityService
}
