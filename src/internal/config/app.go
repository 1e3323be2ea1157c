package config

import (
	"booking-service/src/internal/delivery/http"
	"booking-service/src/internal/delivery/http/middleware"
	"booking-service/src/internal/delivery/http/route"
	"booking-service/src/internal/gateway/messaging"
	"booking-service/src/internal/repository"
	"booking-service/src/internal/usecase"
	"booking-service/src/pkg/kafka"
	"booking-service/src/pkg/log"

	"github.com/hibiken/asynq"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"googlemaps.github.io/maps"
)

type BootstrapConfig struct {
	Stores      repository.Stores
	App         *fiber.App
	Log         log.Log
	Validate    *validator.Validate
	Config      *viper.Viper
	Producer    kafka.Producer
	Geoservice  *GeoService
	AsynqClient *asynq.Client
	Async       *asynq.ServeMux
}

// Runtime holds the long-running pieces main has to drive and tear down.
type Runtime struct {
	Watcher  *usecase.WatcherUseCase
	Location *usecase.LocationUseCase
}

func Bootstrap(config *BootstrapConfig) *Runtime {
	// setup producers
	var bookingProducer *messaging.BookingProducer
	if config.Producer != nil {
		bookingProducer = messaging.NewBookingProducer(config.Producer, config.Log)
	}

	// setup use cases
	pricingUseCase := usecase.NewPricingUseCase(
		config.Log,
		config.Validate,
		config.Stores.Routes,
		config.Stores.Users,
		config.Stores.Coupons,
	)

	bookingUseCase := usecase.NewBookingUseCase(
		config.Log,
		config.Validate,
		config.Stores.Bookings,
		config.Stores.Routes,
		config.Stores.Users,
		pricingUseCase,
		config.Config,
		config.AsynqClient,
	)

	dispatchUseCase := usecase.NewDispatchUseCase(
		config.Log,
		config.Validate,
		config.Stores.Bookings,
		config.Stores.Drivers,
		config.Stores.Vehicles,
	)

	var geoClient *maps.Client
	if config.Geoservice != nil {
		geoClient = config.Geoservice.Client
	}
	locationUseCase := usecase.NewLocationUseCase(
		config.Log,
		config.Validate,
		config.Stores.Locations,
		geoClient,
		config.Config,
	)

	tripUseCase := usecase.NewTripUseCase(
		config.Log,
		config.Validate,
		config.Stores.Bookings,
		config.Stores.Drivers,
		config.Stores.Vehicles,
		config.Stores.Routes,
		config.Stores.Invoices,
		locationUseCase,
	)

	invoiceUseCase := usecase.NewInvoiceUseCase(config.Log, config.Stores.Invoices)

	watcherUseCase := usecase.NewWatcherUseCase(
		config.Log,
		config.Stores.Bookings,
		bookingProducer,
		config.Config,
	)

	// setup controllers
	bookingController := http.NewBookingController(bookingUseCase, pricingUseCase, tripUseCase, config.Log)
	dispatchController := http.NewDispatchController(dispatchUseCase, config.Log)
	trackingController := http.NewTrackingController(locationUseCase, config.Log)
	invoiceController := http.NewInvoiceController(invoiceUseCase, config.Log)

	// setup middleware
	authMiddleware := middleware.VerifyBearer(config.Config)
	config.Async.HandleFunc(usecase.TypeAutoDispatch, dispatchUseCase.HandleAutoDispatch)

	routeConfig := route.RouteConfig{
		App:                config.App,
		BookingController:  bookingController,
		DispatchController: dispatchController,
		TrackingController: trackingController,
		InvoiceController:  invoiceController,
		AuthMiddleware:     authMiddleware,
	}
	routeConfig.Setup()

	return &Runtime{
		Watcher:  watcherUseCase,
		Location: locationUseCase,
	}
}
