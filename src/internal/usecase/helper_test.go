package usecase

import (
	"context"
	"testing"
	"time"

	"booking-service/src/internal/entity"
	"booking-service/src/internal/model"
	"booking-service/src/internal/repository"
	"booking-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const testTenant = "tenant-a"

type fixture struct {
	Stores   repository.Stores
	Pricing  *PricingUseCase
	Booking  *BookingUseCase
	Dispatch *DispatchUseCase
	Location *LocationUseCase
	Trip     *TripUseCase
	Config   *viper.Viper
}

func newFixture() *fixture {
	logger := log.NewTestLogger()
	validate := validator.New()
	stores := repository.NewMemoryStores()

	cfg := viper.New()
	cfg.SetDefault("feed.interval_seconds", 1)
	cfg.SetDefault("feed.default_lat", -6.2)
	cfg.SetDefault("feed.default_lng", 106.8)
	cfg.SetDefault("pricing.parcel_base", 5.0)
	cfg.SetDefault("pricing.parcel_per_kg", 1.5)
	cfg.SetDefault("pricing.point_to_point_base", 12.0)
	cfg.SetDefault("pricing.airport_transfer_base", 30.0)

	pricing := NewPricingUseCase(logger, validate, stores.Routes, stores.Users, stores.Coupons)
	booking := NewBookingUseCase(logger, validate, stores.Bookings, stores.Routes, stores.Users, pricing, cfg, nil)
	dispatch := NewDispatchUseCase(logger, validate, stores.Bookings, stores.Drivers, stores.Vehicles)
	location := NewLocationUseCase(logger, validate, stores.Locations, nil, cfg)
	trip := NewTripUseCase(logger, validate, stores.Bookings, stores.Drivers, stores.Vehicles, stores.Routes, stores.Invoices, location)

	return &fixture{
		Stores:   stores,
		Pricing:  pricing,
		Booking:  booking,
		Dispatch: dispatch,
		Location: location,
		Trip:     trip,
		Config:   cfg,
	}
}

func (f *fixture) seedRoute(t *testing.T, id string, basePrice float64, seats int) {
	t.Helper()
	childPrice := basePrice / 2
	route := &entity.Route{
		ID:         id,
		TenantID:   testTenant,
		Kind:       entity.KindScheduledSeat,
		Name:       "Jakarta - Bandung",
		BasePrice:  basePrice,
		ChildPrice: &childPrice,
		CreatedAt:  time.Now(),
	}
	if seats >= 0 {
		route.SeatsAvailable = &seats
	}
	require.NoError(t, f.Stores.Routes.Insert(context.Background(), route))
}

func (f *fixture) seedUser(t *testing.T, id string, role entity.UserRole, markup *float64) {
	t.Helper()
	require.NoError(t, f.Stores.Users.Insert(context.Background(), &entity.User{
		UserID:        id,
		TenantID:      testTenant,
		Role:          role,
		FullName:      "Test User",
		MarkupPercent: markup,
		CreatedAt:     time.Now(),
	}))
}

func (f *fixture) seedDriver(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.Stores.Drivers.Insert(context.Background(), &entity.Driver{
		ID:        id,
		TenantID:  testTenant,
		FullName:  "Test Driver",
		Status:    entity.DriverFree,
		CreatedAt: time.Now(),
	}))
}

func (f *fixture) seedVehicle(t *testing.T, id string, capacity int, rate float64) {
	t.Helper()
	require.NoError(t, f.Stores.Vehicles.Insert(context.Background(), &entity.Vehicle{
		ID:          id,
		TenantID:    testTenant,
		PlateNumber: "B 1234 XYZ",
		Capacity:    capacity,
		RatePerTrip: rate,
		Status:      entity.VehicleAvailable,
		CreatedAt:   time.Now(),
	}))
}

func (f *fixture) createSeatBooking(t *testing.T, routeID, customerID string, adults, children int) *model.BookingResponse {
	t.Helper()
	result := f.Booking.CreateBooking(context.Background(), &model.CreateBookingRequest{
		TenantID:      testTenant,
		CustomerID:    customerID,
		RouteID:       routeID,
		Adults:        adults,
		Children:      children,
		PaymentMethod: "CASH",
	})
	require.NoError(t, result.Error)
	return result.Data.(*model.BookingResponse)
}
