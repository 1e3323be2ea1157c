package usecase

import (
	"context"
	"testing"

	"booking-service/src/internal/entity"
	"booking-service/src/internal/model"
	"booking-service/src/internal/repository"
	httpError "booking-service/src/pkg/http-error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) confirmBooking(t *testing.T, bookingID string) {
	t.Helper()
	result := f.Dispatch.Assign(context.Background(), &model.AssignRequest{
		TenantID:  testTenant,
		BookingID: bookingID,
		DriverID:  "driver-1",
		VehicleID: "vehicle-1",
	})
	require.NoError(t, result.Error)
}

func (f *fixture) advance(t *testing.T, bookingID, event string) error {
	t.Helper()
	result := f.Trip.Advance(context.Background(), &model.AdvanceRequest{
		TenantID:  testTenant,
		BookingID: bookingID,
		Event:     event,
	})
	return result.Error
}

func TestTripStartToCompletion(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 5)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)
	f.seedDriver(t, "driver-1")
	f.seedVehicle(t, "vehicle-1", 4, 20)

	booking := f.createSeatBooking(t, "route-1", "user-1", 2, 0)
	f.confirmBooking(t, booking.ID)

	require.NoError(t, f.advance(t, booking.ID, "start"))

	stored, err := f.Stores.Bookings.FindByID(context.Background(), testTenant, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, stored.Status)

	driver, err := f.Stores.Drivers.FindByID(context.Background(), testTenant, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DriverOnTrip, driver.Status)

	sample, err := f.Stores.Locations.FindByBookingID(context.Background(), testTenant, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "driver-1", sample.DriverID)

	require.NoError(t, f.advance(t, booking.ID, "complete"))

	stored, err = f.Stores.Bookings.FindByID(context.Background(), testTenant, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, stored.Status)
	assert.NotNil(t, stored.CompletedAt)

	driver, err = f.Stores.Drivers.FindByID(context.Background(), testTenant, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DriverFree, driver.Status)
	assert.Nil(t, driver.VehicleID)

	vehicle, err := f.Stores.Vehicles.FindByID(context.Background(), testTenant, "vehicle-1")
	require.NoError(t, err)
	assert.Equal(t, entity.VehicleAvailable, vehicle.Status)

	invoice, err := f.Stores.Invoices.FindByBookingID(context.Background(), testTenant, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.Price, invoice.Amount)
	assert.Equal(t, "CASH", invoice.PaymentMethod)
	assert.Equal(t, "user-1", invoice.CustomerID)

	_, err = f.Stores.Locations.FindByBookingID(context.Background(), testTenant, booking.ID)
	assert.Equal(t, repository.ErrNotFound, err)
}

func TestCompleteTwiceIssuesOneInvoice(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 5)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)
	f.seedDriver(t, "driver-1")
	f.seedVehicle(t, "vehicle-1", 4, 20)

	booking := f.createSeatBooking(t, "route-1", "user-1", 1, 0)
	f.confirmBooking(t, booking.ID)
	require.NoError(t, f.advance(t, booking.ID, "start"))
	require.NoError(t, f.advance(t, booking.ID, "complete"))

	err := f.advance(t, booking.ID, "complete")
	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", err.(*httpError.CommonError).ResponseCode)

	invoices, listErr := f.Stores.Invoices.ListByCustomer(context.Background(), testTenant, "user-1")
	require.NoError(t, listErr)
	assert.Len(t, invoices, 1)
}

func TestStartRequiresConfirmedBooking(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 5)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)

	booking := f.createSeatBooking(t, "route-1", "user-1", 1, 0)

	err := f.advance(t, booking.ID, "start")
	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", err.(*httpError.CommonError).ResponseCode)

	stored, findErr := f.Stores.Bookings.FindByID(context.Background(), testTenant, booking.ID)
	require.NoError(t, findErr)
	assert.Equal(t, entity.StatusPending, stored.Status)
}

func TestCancelPendingRestoresSeats(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 5)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)

	booking := f.createSeatBooking(t, "route-1", "user-1", 2, 1)

	route, err := f.Stores.Routes.FindByID(context.Background(), testTenant, "route-1")
	require.NoError(t, err)
	require.Equal(t, 2, *route.SeatsAvailable)

	require.NoError(t, f.advance(t, booking.ID, "cancel"))

	stored, err := f.Stores.Bookings.FindByID(context.Background(), testTenant, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, stored.Status)

	route, err = f.Stores.Routes.FindByID(context.Background(), testTenant, "route-1")
	require.NoError(t, err)
	assert.Equal(t, 5, *route.SeatsAvailable)
}

func TestCancelConfirmedReleasesResources(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 5)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)
	f.seedDriver(t, "driver-1")
	f.seedVehicle(t, "vehicle-1", 4, 20)

	booking := f.createSeatBooking(t, "route-1", "user-1", 2, 0)
	f.confirmBooking(t, booking.ID)
	require.True(t, entity.CanTransition(entity.StatusConfirmed, entity.StatusCancelled))

	require.NoError(t, f.advance(t, booking.ID, "cancel"))

	stored, err := f.Stores.Bookings.FindByID(context.Background(), testTenant, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, stored.Status)
	assert.Nil(t, stored.DriverID)
	assert.Nil(t, stored.VehicleID)

	driver, err := f.Stores.Drivers.FindByID(context.Background(), testTenant, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DriverFree, driver.Status)
	assert.Nil(t, driver.VehicleID)

	vehicle, err := f.Stores.Vehicles.FindByID(context.Background(), testTenant, "vehicle-1")
	require.NoError(t, err)
	assert.Equal(t, entity.VehicleAvailable, vehicle.Status)

	route, err := f.Stores.Routes.FindByID(context.Background(), testTenant, "route-1")
	require.NoError(t, err)
	assert.Equal(t, 5, *route.SeatsAvailable)
}

func TestCancelInProgressRejected(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 5)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)
	f.seedDriver(t, "driver-1")
	f.seedVehicle(t, "vehicle-1", 4, 20)

	booking := f.createSeatBooking(t, "route-1", "user-1", 1, 0)
	f.confirmBooking(t, booking.ID)
	require.NoError(t, f.advance(t, booking.ID, "start"))

	err := f.advance(t, booking.ID, "cancel")
	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", err.(*httpError.CommonError).ResponseCode)
}

func TestAdvanceUnknownBooking(t *testing.T) {
	f := newFixture()

	err := f.advance(t, "missing", "start")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*httpError.CommonError).ResponseCode)
}
