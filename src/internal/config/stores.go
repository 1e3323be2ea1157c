package config

import (
	"booking-service/src/internal/repository"
	"booking-service/src/pkg/databases/mysql"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// NewStores picks the storage backend: MySQL plus Redis in the default mode,
// or the in-memory bundle for standalone runs (database.driver=memory).
func NewStores(v *viper.Viper, db mysql.DBInterface, redisClient redis.UniversalClient) repository.Stores {
	if v.GetString("database.driver") == "memory" {
		return repository.NewMemoryStores()
	}

	stores := repository.Stores{
		Users:     repository.NewUserRepository(db),
		Drivers:   repository.NewDriverRepository(db),
		Vehicles:  repository.NewVehicleRepository(db),
		Routes:    repository.NewRouteRepository(db),
		Bookings:  repository.NewBookingRepository(db),
		Invoices:  repository.NewInvoiceRepository(db),
		Coupons:   repository.NewCouponRepository(db),
		Locations: repository.NewLocationRepositoryMemory(),
	}
	if redisClient != nil {
		stores.Locations = repository.NewLocationRepository(redisClient)
	}
	return stores
}
