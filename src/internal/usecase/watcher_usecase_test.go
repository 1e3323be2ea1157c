package usecase

import (
	"context"
	"testing"

	"booking-service/src/internal/entity"
	"booking-service/src/internal/model"
	"booking-service/src/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingBooking(id string) entity.Booking {
	return entity.Booking{
		ID:         id,
		TenantID:   testTenant,
		CustomerID: "user-1",
		Kind:       entity.KindScheduledSeat,
		Status:     entity.StatusPending,
	}
}

func TestDiffIdenticalSnapshotsEmitNothing(t *testing.T) {
	snapshot := []entity.Booking{pendingBooking("b1"), pendingBooking("b2")}

	events := DiffSnapshots(testTenant, snapshot, snapshot)
	assert.Empty(t, events)
}

func TestDiffStatusChangeEmitsOneEvent(t *testing.T) {
	prev := []entity.Booking{pendingBooking("b1")}
	curr := []entity.Booking{pendingBooking("b1")}
	curr[0].Status = entity.StatusConfirmed

	events := DiffSnapshots(testTenant, prev, curr)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventConfirmed, events[0].Kind)
	assert.Equal(t, "b1", events[0].BookingID)
	assert.Equal(t, testTenant, events[0].TenantID)
	assert.NotEmpty(t, events[0].EventID)
}

func TestDiffDriverGainedEmitsAssigned(t *testing.T) {
	driverID := "driver-1"
	prev := []entity.Booking{pendingBooking("b1")}
	curr := []entity.Booking{pendingBooking("b1")}
	curr[0].DriverID = &driverID

	events := DiffSnapshots(testTenant, prev, curr)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventAssigned, events[0].Kind)
	assert.Equal(t, driverID, events[0].DriverID)
}

func TestDiffConfirmWithDriverEmitsBoth(t *testing.T) {
	driverID := "driver-1"
	prev := []entity.Booking{pendingBooking("b1")}
	curr := []entity.Booking{pendingBooking("b1")}
	curr[0].DriverID = &driverID
	curr[0].Status = entity.StatusConfirmed

	events := DiffSnapshots(testTenant, prev, curr)
	require.Len(t, events, 2)
	assert.Equal(t, model.EventAssigned, events[0].Kind)
	assert.Equal(t, model.EventConfirmed, events[1].Kind)
}

func TestDiffNewBookingIsBaselineNotNews(t *testing.T) {
	curr := []entity.Booking{pendingBooking("b1")}
	curr[0].Status = entity.StatusCompleted

	events := DiffSnapshots(testTenant, nil, curr)
	assert.Empty(t, events)
}

func TestDiffCancelledEmitsNothing(t *testing.T) {
	prev := []entity.Booking{pendingBooking("b1")}
	curr := []entity.Booking{pendingBooking("b1")}
	curr[0].Status = entity.StatusCancelled

	events := DiffSnapshots(testTenant, prev, curr)
	assert.Empty(t, events)
}

func TestWatcherPollDispatchesOnce(t *testing.T) {
	f := newFixture()
	f.Config.Set("watcher.tenants", []string{testTenant})

	watcher := NewWatcherUseCase(log.NewTestLogger(), f.Stores.Bookings, nil, f.Config)
	var seen []*model.BookingEvent
	watcher.Notify = func(event *model.BookingEvent) {
		seen = append(seen, event)
	}

	ctx := context.Background()
	booking := pendingBooking("b1")
	require.NoError(t, f.Stores.Bookings.Insert(ctx, &booking))

	// First poll establishes the baseline.
	watcher.Poll(ctx)
	assert.Empty(t, seen)

	ok, err := f.Stores.Bookings.UpdateStatus(ctx, testTenant, "b1", entity.StatusPending, entity.StatusConfirmed, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	watcher.Poll(ctx)
	require.Len(t, seen, 1)
	assert.Equal(t, model.EventConfirmed, seen[0].Kind)

	// Nothing changed, nothing new.
	watcher.Poll(ctx)
	assert.Len(t, seen, 1)
}
