package usecase

import (
	"context"
	"sync"
	"testing"

	"booking-service/src/internal/entity"
	"booking-service/src/internal/model"
	httpError "booking-service/src/pkg/http-error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignConfirmsBooking(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 5)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)
	f.seedDriver(t, "driver-1")
	f.seedVehicle(t, "vehicle-1", 4, 20)

	booking := f.createSeatBooking(t, "route-1", "user-1", 2, 0)

	result := f.Dispatch.Assign(context.Background(), &model.AssignRequest{
		TenantID:  testTenant,
		BookingID: booking.ID,
		DriverID:  "driver-1",
		VehicleID: "vehicle-1",
	})
	require.NoError(t, result.Error)

	confirmed := result.Data.(*model.BookingResponse)
	assert.Equal(t, entity.StatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.DriverID)
	assert.Equal(t, "driver-1", *confirmed.DriverID)

	driver, err := f.Stores.Drivers.FindByID(context.Background(), testTenant, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DriverBusy, driver.Status)
	require.NotNil(t, driver.VehicleID)
	assert.Equal(t, "vehicle-1", *driver.VehicleID)

	vehicle, err := f.Stores.Vehicles.FindByID(context.Background(), testTenant, "vehicle-1")
	require.NoError(t, err)
	assert.Equal(t, entity.VehicleInUse, vehicle.Status)
}

func TestAssignBusyDriverRejected(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 5)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)
	f.seedDriver(t, "driver-1")
	f.seedVehicle(t, "vehicle-1", 4, 20)
	f.seedVehicle(t, "vehicle-2", 4, 25)

	first := f.createSeatBooking(t, "route-1", "user-1", 1, 0)
	second := f.createSeatBooking(t, "route-1", "user-1", 1, 0)

	result := f.Dispatch.Assign(context.Background(), &model.AssignRequest{
		TenantID: testTenant, BookingID: first.ID, DriverID: "driver-1", VehicleID: "vehicle-1",
	})
	require.NoError(t, result.Error)

	result = f.Dispatch.Assign(context.Background(), &model.AssignRequest{
		TenantID: testTenant, BookingID: second.ID, DriverID: "driver-1", VehicleID: "vehicle-2",
	})
	require.Error(t, result.Error)

	errObj := result.Error.(*httpError.CommonError)
	assert.Equal(t, "RESOURCE_UNAVAILABLE", errObj.ResponseCode)
	assert.Equal(t, 409, errObj.Code)

	// The losing booking is untouched.
	stored, err := f.Stores.Bookings.FindByID(context.Background(), testTenant, second.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, stored.Status)
	assert.Nil(t, stored.DriverID)
}

func TestAssignNonPendingBooking(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 5)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)
	f.seedDriver(t, "driver-1")
	f.seedVehicle(t, "vehicle-1", 4, 20)

	booking := f.createSeatBooking(t, "route-1", "user-1", 1, 0)
	ok, err := f.Stores.Bookings.UpdateStatus(context.Background(), testTenant, booking.ID, entity.StatusPending, entity.StatusCancelled, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	result := f.Dispatch.Assign(context.Background(), &model.AssignRequest{
		TenantID: testTenant, BookingID: booking.ID, DriverID: "driver-1", VehicleID: "vehicle-1",
	})
	require.Error(t, result.Error)
	assert.Equal(t, "INVALID_TRANSITION", result.Error.(*httpError.CommonError).ResponseCode)
}

func TestConcurrentAssignSameDriverExactlyOneWins(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 20)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)
	f.seedDriver(t, "driver-1")

	const n = 10
	bookings := make([]*model.BookingResponse, n)
	for i := 0; i < n; i++ {
		f.seedVehicle(t, "vehicle-"+string(rune('a'+i)), 4, 20)
		bookings[i] = f.createSeatBooking(t, "route-1", "user-1", 1, 0)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result := f.Dispatch.Assign(context.Background(), &model.AssignRequest{
				TenantID:  testTenant,
				BookingID: bookings[i].ID,
				DriverID:  "driver-1",
				VehicleID: "vehicle-" + string(rune('a'+i)),
			})
			errs[i] = result.Error
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, "RESOURCE_UNAVAILABLE", err.(*httpError.CommonError).ResponseCode)
	}
	assert.Equal(t, 1, succeeded)

	// Every losing vehicle must be rolled back to AVAILABLE.
	vehicles, err := f.Stores.Vehicles.ListByStatus(context.Background(), testTenant, entity.VehicleInUse)
	require.NoError(t, err)
	assert.Len(t, vehicles, 1)
}

func TestAutoAssignPicksCheapestCompatibleVehicle(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 10)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)
	f.seedDriver(t, "driver-1")
	f.seedVehicle(t, "vehicle-small", 2, 10)
	f.seedVehicle(t, "vehicle-cheap", 6, 20)
	f.seedVehicle(t, "vehicle-pricey", 6, 35)

	booking := f.createSeatBooking(t, "route-1", "user-1", 3, 1)

	result := f.Dispatch.AutoAssign(context.Background(), &model.AutoAssignRequest{
		TenantID:  testTenant,
		BookingID: booking.ID,
	})
	require.NoError(t, result.Error)

	confirmed := result.Data.(*model.BookingResponse)
	require.NotNil(t, confirmed.VehicleID)
	assert.Equal(t, "vehicle-cheap", *confirmed.VehicleID)
	assert.Equal(t, entity.StatusConfirmed, confirmed.Status)
}

func TestAutoAssignNoCandidates(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 10)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)
	f.seedDriver(t, "driver-1")
	f.seedVehicle(t, "vehicle-small", 1, 10)

	booking := f.createSeatBooking(t, "route-1", "user-1", 3, 0)

	result := f.Dispatch.AutoAssign(context.Background(), &model.AutoAssignRequest{
		TenantID:  testTenant,
		BookingID: booking.ID,
	})
	require.Error(t, result.Error)
	assert.Equal(t, "RESOURCE_UNAVAILABLE", result.Error.(*httpError.CommonError).ResponseCode)
}
