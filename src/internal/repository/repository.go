package repository

import (
	"context"
	"errors"

	"booking-service/src/internal/entity"
)

// ErrNotFound is returned by point lookups for a missing id. List queries
// return empty slices instead.
var ErrNotFound = errors.New("repository: not found")

// All repositories are tenant-scoped: every read and write is bounded by the
// tenant id, and status updates are compare-and-swap so check-then-act
// sequences stay atomic under concurrent dispatchers.

type UserRepository interface {
	Insert(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, tenantID, id string) (*entity.User, error)
}

type DriverRepository interface {
	Insert(ctx context.Context, driver *entity.Driver) error
	FindByID(ctx context.Context, tenantID, id string) (*entity.Driver, error)
	ListByStatus(ctx context.Context, tenantID string, status entity.DriverStatus) ([]entity.Driver, error)
	// UpdateStatus swaps status (and vehicle ownership) only when the current
	// status equals from; reports whether the swap happened.
	UpdateStatus(ctx context.Context, tenantID, id string, from, to entity.DriverStatus, vehicleID *string) (bool, error)
}

type VehicleRepository interface {
	Insert(ctx context.Context, vehicle *entity.Vehicle) error
	FindByID(ctx context.Context, tenantID, id string) (*entity.Vehicle, error)
	ListByStatus(ctx context.Context, tenantID string, status entity.VehicleStatus) ([]entity.Vehicle, error)
	UpdateStatus(ctx context.Context, tenantID, id string, from, to entity.VehicleStatus) (bool, error)
}

type RouteRepository interface {
	Insert(ctx context.Context, route *entity.Route) error
	FindByID(ctx context.Context, tenantID, id string) (*entity.Route, error)
	List(ctx context.Context, tenantID string) ([]entity.Route, error)
	// DecrementSeats atomically reserves n seats; reports false when the
	// remaining inventory is insufficient.
	DecrementSeats(ctx context.Context, tenantID, id string, n int) (bool, error)
	IncrementSeats(ctx context.Context, tenantID, id string, n int) error
}

type BookingRepository interface {
	Insert(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, tenantID, id string) (*entity.Booking, error)
	List(ctx context.Context, tenantID string, filter entity.BookingFilter) ([]entity.Booking, error)
	// UpdateStatus swaps status only from the expected state, optionally binding
	// driver and vehicle. It stamps completed_at on COMPLETED and clears the
	// driver and vehicle bindings on CANCELLED.
	UpdateStatus(ctx context.Context, tenantID, id string, from, to entity.BookingStatus, driverID, vehicleID *string) (bool, error)
}

type InvoiceRepository interface {
	Insert(ctx context.Context, invoice *entity.Invoice) error
	FindByBookingID(ctx context.Context, tenantID, bookingID string) (*entity.Invoice, error)
	ListByCustomer(ctx context.Context, tenantID, customerID string) ([]entity.Invoice, error)
}

type CouponRepository interface {
	Insert(ctx context.Context, coupon *entity.Coupon) error
	FindByCode(ctx context.Context, tenantID, code string) (*entity.Coupon, error)
}

type LocationRepository interface {
	Set(ctx context.Context, sample *entity.LocationSample) error
	FindByBookingID(ctx context.Context, tenantID, bookingID string) (*entity.LocationSample, error)
	Delete(ctx context.Context, tenantID, bookingID string) error
}

// Stores bundles every repository for dependency injection.
type Stores struct {
	Users     UserRepository
	Drivers   DriverRepository
	Vehicles  VehicleRepository
	Routes    RouteRepository
	Bookings  BookingRepository
	Invoices  InvoiceRepository
	Coupons   CouponRepository
	Locations LocationRepository
}
