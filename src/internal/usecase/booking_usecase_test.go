package usecase

import (
	"context"
	"testing"

	"booking-service/src/internal/entity"
	"booking-service/src/internal/model"
	httpError "booking-service/src/pkg/http-error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequiresPaymentMethod(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 5)

	result := f.Booking.CreateBooking(context.Background(), &model.CreateBookingRequest{
		TenantID:   testTenant,
		CustomerID: "user-1",
		RouteID:    "route-1",
		Adults:     1,
	})
	require.Error(t, result.Error)
	assert.Equal(t, "VALIDATION_ERROR", result.Error.(*httpError.CommonError).ResponseCode)
}

func TestCreateBookingUnknownRoute(t *testing.T) {
	f := newFixture()

	result := f.Booking.CreateBooking(context.Background(), &model.CreateBookingRequest{
		TenantID:      testTenant,
		CustomerID:    "user-1",
		RouteID:       "missing",
		Adults:        1,
		PaymentMethod: "CASH",
	})
	require.Error(t, result.Error)
	assert.Equal(t, "NOT_FOUND", result.Error.(*httpError.CommonError).ResponseCode)
}

func TestCreateScheduledSeatBooking(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 5)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)

	booking := f.createSeatBooking(t, "route-1", "user-1", 2, 1)
	assert.Equal(t, entity.StatusPending, booking.Status)
	assert.Equal(t, 25.0, booking.Price)
	assert.Nil(t, booking.DriverID)

	route, err := f.Stores.Routes.FindByID(context.Background(), testTenant, "route-1")
	require.NoError(t, err)
	assert.Equal(t, 2, *route.SeatsAvailable)
}

func TestSeatInventoryExhaustion(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 3)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)

	for i := 0; i < 3; i++ {
		f.createSeatBooking(t, "route-1", "user-1", 1, 0)
	}

	result := f.Booking.CreateBooking(context.Background(), &model.CreateBookingRequest{
		TenantID:      testTenant,
		CustomerID:    "user-1",
		RouteID:       "route-1",
		Adults:        1,
		PaymentMethod: "CASH",
	})
	require.Error(t, result.Error)

	errObj := result.Error.(*httpError.CommonError)
	assert.Equal(t, "CAPACITY_EXCEEDED", errObj.ResponseCode)
	assert.Equal(t, 422, errObj.Code)

	route, err := f.Stores.Routes.FindByID(context.Background(), testTenant, "route-1")
	require.NoError(t, err)
	assert.Equal(t, 0, *route.SeatsAvailable)
}

func TestCreateParcelBooking(t *testing.T) {
	f := newFixture()

	result := f.Booking.CreateBooking(context.Background(), &model.CreateBookingRequest{
		TenantID:      testTenant,
		CustomerID:    "user-1",
		Kind:          "PARCEL",
		PaymentMethod: "TRANSFER",
		Details: entity.BookingDetails{
			Parcel: &entity.ParcelDetail{
				PickupAddress:   "Jl. Sudirman 1",
				DeliveryAddress: "Jl. Thamrin 2",
				WeightKg:        4,
				RecipientName:   "Budi",
				RecipientPhone:  "0812",
			},
		},
	})
	require.NoError(t, result.Error)

	booking := result.Data.(*model.BookingResponse)
	assert.Equal(t, entity.KindParcel, booking.Kind)
	assert.Equal(t, 11.0, booking.Price) // 5 base + 1.5 * 4kg
	assert.Nil(t, booking.RouteID)
}

func TestParcelBookingRequiresDetails(t *testing.T) {
	f := newFixture()

	result := f.Booking.CreateBooking(context.Background(), &model.CreateBookingRequest{
		TenantID:      testTenant,
		CustomerID:    "user-1",
		Kind:          "PARCEL",
		PaymentMethod: "CASH",
	})
	require.Error(t, result.Error)
	assert.Equal(t, "VALIDATION_ERROR", result.Error.(*httpError.CommonError).ResponseCode)
}

func TestRouteKindsRejectAdhocCreation(t *testing.T) {
	f := newFixture()

	// SCHEDULED_SEAT without a routeId has nothing to book against.
	result := f.Booking.CreateBooking(context.Background(), &model.CreateBookingRequest{
		TenantID:      testTenant,
		CustomerID:    "user-1",
		Kind:          "SCHEDULED_SEAT",
		Adults:        1,
		PaymentMethod: "CASH",
	})
	require.Error(t, result.Error)
	assert.Equal(t, "VALIDATION_ERROR", result.Error.(*httpError.CommonError).ResponseCode)
}

func TestListBookingsFiltersByStatus(t *testing.T) {
	f := newFixture()
	f.seedRoute(t, "route-1", 10, 10)
	f.seedUser(t, "user-1", entity.RoleCustomer, nil)

	first := f.createSeatBooking(t, "route-1", "user-1", 1, 0)
	f.createSeatBooking(t, "route-1", "user-1", 1, 0)

	ok, err := f.Stores.Bookings.UpdateStatus(context.Background(), testTenant, first.ID, entity.StatusPending, entity.StatusCancelled, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	result := f.Booking.ListBookings(context.Background(), &model.ListBookingsRequest{
		TenantID: testTenant,
		Status:   "PENDING",
	})
	require.NoError(t, result.Error)

	bookings := result.Data.([]model.BookingResponse)
	require.Len(t, bookings, 1)
	assert.NotEqual(t, first.ID, bookings[0].ID)
}

func TestBookingDetailNotFound(t *testing.T) {
	f := newFixture()

	result := f.Booking.BookingDetail(context.Background(), testTenant, "missing")
	require.Error(t, result.Error)
	assert.Equal(t, "NOT_FOUND", result.Error.(*httpError.CommonError).ResponseCode)
}
