package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"booking-service/src/internal/entity"
)

// In-memory repositories back the standalone mode (database.driver=memory) and
// the package tests. Semantics mirror the MySQL implementations: tenant-scoped
// keys, whole-entity writes, compare-and-swap status updates.

func memKey(tenantID, id string) string {
	return tenantID + "/" + id
}

// NewMemoryStores returns a full Stores bundle backed by process memory.
func NewMemoryStores() Stores {
	return Stores{
		Users:     NewUserRepositoryMemory(),
		Drivers:   NewDriverRepositoryMemory(),
		Vehicles:  NewVehicleRepositoryMemory(),
		Routes:    NewRouteRepositoryMemory(),
		Bookings:  NewBookingRepositoryMemory(),
		Invoices:  NewInvoiceRepositoryMemory(),
		Coupons:   NewCouponRepositoryMemory(),
		Locations: NewLocationRepositoryMemory(),
	}
}

type UserRepositoryMemory struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

func NewUserRepositoryMemory() *UserRepositoryMemory {
	return &UserRepositoryMemory{users: map[string]entity.User{}}
}

func (r *UserRepositoryMemory) Insert(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[memKey(user.TenantID, user.UserID)] = *user
	return nil
}

func (r *UserRepositoryMemory) FindByID(_ context.Context, tenantID, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[memKey(tenantID, id)]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

type DriverRepositoryMemory struct {
	mu      sync.RWMutex
	drivers map[string]entity.Driver
}

func NewDriverRepositoryMemory() *DriverRepositoryMemory {
	return &DriverRepositoryMemory{drivers: map[string]entity.Driver{}}
}

func (r *DriverRepositoryMemory) Insert(_ context.Context, driver *entity.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers[memKey(driver.TenantID, driver.ID)] = *driver
	return nil
}

func (r *DriverRepositoryMemory) FindByID(_ context.Context, tenantID, id string) (*entity.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	driver, ok := r.drivers[memKey(tenantID, id)]
	if !ok {
		return nil, ErrNotFound
	}
	return &driver, nil
}

func (r *DriverRepositoryMemory) ListByStatus(_ context.Context, tenantID string, status entity.DriverStatus) ([]entity.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	drivers := []entity.Driver{}
	for _, d := range r.drivers {
		if d.TenantID == tenantID && d.Status == status {
			drivers = append(drivers, d)
		}
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].ID < drivers[j].ID })
	return drivers, nil
}

func (r *DriverRepositoryMemory) UpdateStatus(_ context.Context, tenantID, id string, from, to entity.DriverStatus, vehicleID *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	driver, ok := r.drivers[memKey(tenantID, id)]
	if !ok || driver.Status != from {
		return false, nil
	}
	now := time.Now()
	driver.Status = to
	driver.VehicleID = vehicleID
	driver.UpdatedAt = &now
	r.drivers[memKey(tenantID, id)] = driver
	return true, nil
}

type VehicleRepositoryMemory struct {
	mu       sync.RWMutex
	vehicles map[string]entity.Vehicle
}

func NewVehicleRepositoryMemory() *VehicleRepositoryMemory {
	return &VehicleRepositoryMemory{vehicles: map[string]entity.Vehicle{}}
}

func (r *VehicleRepositoryMemory) Insert(_ context.Context, vehicle *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles[memKey(vehicle.TenantID, vehicle.ID)] = *vehicle
	return nil
}

func (r *VehicleRepositoryMemory) FindByID(_ context.Context, tenantID, id string) (*entity.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vehicle, ok := r.vehicles[memKey(tenantID, id)]
	if !ok {
		return nil, ErrNotFound
	}
	return &vehicle, nil
}

func (r *VehicleRepositoryMemory) ListByStatus(_ context.Context, tenantID string, status entity.VehicleStatus) ([]entity.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vehicles := []entity.Vehicle{}
	for _, v := range r.vehicles {
		if v.TenantID == tenantID && v.Status == status {
			vehicles = append(vehicles, v)
		}
	}
	sort.Slice(vehicles, func(i, j int) bool {
		if vehicles[i].RatePerTrip != vehicles[j].RatePerTrip {
			return vehicles[i].RatePerTrip < vehicles[j].RatePerTrip
		}
		return vehicles[i].ID < vehicles[j].ID
	})
	return vehicles, nil
}

func (r *VehicleRepositoryMemory) UpdateStatus(_ context.Context, tenantID, id string, from, to entity.VehicleStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[memKey(tenantID, id)]
	if !ok || vehicle.Status != from {
		return false, nil
	}
	now := time.Now()
	vehicle.Status = to
	vehicle.UpdatedAt = &now
	r.vehicles[memKey(tenantID, id)] = vehicle
	return true, nil
}

type RouteRepositoryMemory struct {
	mu     sync.RWMutex
	routes map[string]entity.Route
}

func NewRouteRepositoryMemory() *RouteRepositoryMemory {
	return &RouteRepositoryMemory{routes: map[string]entity.Route{}}
}

func (r *RouteRepositoryMemory) Insert(_ context.Context, route *entity.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[memKey(route.TenantID, route.ID)] = *route
	return nil
}

func (r *RouteRepositoryMemory) FindByID(_ context.Context, tenantID, id string) (*entity.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[memKey(tenantID, id)]
	if !ok {
		return nil, ErrNotFound
	}
	return &route, nil
}

func (r *RouteRepositoryMemory) List(_ context.Context, tenantID string) ([]entity.Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	routes := []entity.Route{}
	for _, route := range r.routes {
		if route.TenantID == tenantID {
			routes = append(routes, route)
		}
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].ID < routes[j].ID })
	return routes, nil
}

func (r *RouteRepositoryMemory) DecrementSeats(_ context.Context, tenantID, id string, n int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	route, ok := r.routes[memKey(tenantID, id)]
	if !ok || route.SeatsAvailable == nil || *route.SeatsAvailable < n {
		return false, nil
	}
	seats := *route.SeatsAvailable - n
	route.SeatsAvailable = &seats
	r.routes[memKey(tenantID, id)] = route
	return true, nil
}

func (r *RouteRepositoryMemory) IncrementSeats(_ context.Context, tenantID, id string, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	route, ok := r.routes[memKey(tenantID, id)]
	if !ok || route.SeatsAvailable == nil {
		return nil
	}
	seats := *route.SeatsAvailable + n
	route.SeatsAvailable = &seats
	r.routes[memKey(tenantID, id)] = route
	return nil
}

type BookingRepositoryMemory struct {
	mu       sync.RWMutex
	bookings map[string]entity.Booking
}

func NewBookingRepositoryMemory() *BookingRepositoryMemory {
	return &BookingRepositoryMemory{bookings: map[string]entity.Booking{}}
}

func (r *BookingRepositoryMemory) Insert(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[memKey(booking.TenantID, booking.ID)] = *booking
	return nil
}

func (r *BookingRepositoryMemory) FindByID(_ context.Context, tenantID, id string) (*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	booking, ok := r.bookings[memKey(tenantID, id)]
	if !ok {
		return nil, ErrNotFound
	}
	return &booking, nil
}

func (r *BookingRepositoryMemory) List(_ context.Context, tenantID string, filter entity.BookingFilter) ([]entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bookings := []entity.Booking{}
	for _, b := range r.bookings {
		if b.TenantID != tenantID {
			continue
		}
		if filter.CustomerID != nil && b.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.DriverID != nil && (b.DriverID == nil || *b.DriverID != *filter.DriverID) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *BookingRepositoryMemory) UpdateStatus(_ context.Context, tenantID, id string, from, to entity.BookingStatus, driverID, vehicleID *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[memKey(tenantID, id)]
	if !ok || booking.Status != from {
		return false, nil
	}
	booking.Status = to
	if driverID != nil {
		booking.DriverID = driverID
	}
	if vehicleID != nil {
		booking.VehicleID = vehicleID
	}
	if to == entity.StatusCancelled {
		booking.DriverID = nil
		booking.VehicleID = nil
	}
	if to == entity.StatusCompleted {
		now := time.Now()
		booking.CompletedAt = &now
	}
	r.bookings[memKey(tenantID, id)] = booking
	return true, nil
}

type InvoiceRepositoryMemory struct {
	mu       sync.RWMutex
	invoices map[string]entity.Invoice // keyed by tenant/bookingID, one per booking
}

func NewInvoiceRepositoryMemory() *InvoiceRepositoryMemory {
	return &InvoiceRepositoryMemory{invoices: map[string]entity.Invoice{}}
}

func (r *InvoiceRepositoryMemory) Insert(_ context.Context, invoice *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices[memKey(invoice.TenantID, invoice.BookingID)] = *invoice
	return nil
}

func (r *InvoiceRepositoryMemory) FindByBookingID(_ context.Context, tenantID, bookingID string) (*entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	invoice, ok := r.invoices[memKey(tenantID, bookingID)]
	if !ok {
		return nil, ErrNotFound
	}
	return &invoice, nil
}

func (r *InvoiceRepositoryMemory) ListByCustomer(_ context.Context, tenantID, customerID string) ([]entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	invoices := []entity.Invoice{}
	for _, inv := range r.invoices {
		if inv.TenantID == tenantID && inv.CustomerID == customerID {
			invoices = append(invoices, inv)
		}
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].CreatedAt.Before(invoices[j].CreatedAt) })
	return invoices, nil
}

type CouponRepositoryMemory struct {
	mu      sync.RWMutex
	coupons map[string]entity.Coupon
}

func NewCouponRepositoryMemory() *CouponRepositoryMemory {
	return &CouponRepositoryMemory{coupons: map[string]entity.Coupon{}}
}

func (r *CouponRepositoryMemory) Insert(_ context.Context, coupon *entity.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coupons[memKey(coupon.TenantID, coupon.Code)] = *coupon
	return nil
}

func (r *CouponRepositoryMemory) FindByCode(_ context.Context, tenantID, code string) (*entity.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	coupon, ok := r.coupons[memKey(tenantID, code)]
	if !ok {
		return nil, ErrNotFound
	}
	return &coupon, nil
}

type LocationRepositoryMemory struct {
	mu      sync.RWMutex
	samples map[string]entity.LocationSample // keyed by tenant/bookingID
}

func NewLocationRepositoryMemory() *LocationRepositoryMemory {
	return &LocationRepositoryMemory{samples: map[string]entity.LocationSample{}}
}

func (r *LocationRepositoryMemory) Set(_ context.Context, sample *entity.LocationSample) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples[memKey(sample.TenantID, sample.BookingID)] = *sample
	return nil
}

func (r *LocationRepositoryMemory) FindByBookingID(_ context.Context, tenantID, bookingID string) (*entity.LocationSample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sample, ok := r.samples[memKey(tenantID, bookingID)]
	if !ok {
		return nil, ErrNotFound
	}
	return &sample, nil
}

func (r *LocationRepositoryMemory) Delete(_ context.Context, tenantID, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.samples, memKey(tenantID, bookingID))
	return nil
}
