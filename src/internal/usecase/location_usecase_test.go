package usecase

import (
	"context"
	"math"
	"testing"

	"booking-service/src/internal/model"
	"booking-service/src/internal/repository"
	httpError "booking-service/src/pkg/http-error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartFeedSeedsOrigin(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.Location.StartFeed(context.Background(), testTenant, "driver-1", "booking-1", "", 1.5, 103.8))
	defer f.Location.StopAll()

	sample, err := f.Stores.Locations.FindByBookingID(context.Background(), testTenant, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, 1.5, sample.Lat)
	assert.Equal(t, 103.8, sample.Lng)
	assert.Equal(t, "driver-1", sample.DriverID)
}

func TestStartFeedDefaultsOriginWithoutCoordinates(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.Location.StartFeed(context.Background(), testTenant, "driver-1", "booking-1", "", 0, 0))
	defer f.Location.StopAll()

	sample, err := f.Stores.Locations.FindByBookingID(context.Background(), testTenant, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, f.Config.GetFloat64("feed.default_lat"), sample.Lat)
	assert.Equal(t, f.Config.GetFloat64("feed.default_lng"), sample.Lng)
}

func TestStartFeedIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.Location.StartFeed(ctx, testTenant, "driver-1", "booking-1", "", 1.5, 103.8))
	defer f.Location.StopAll()

	// Second start with different coordinates must not reseed the sample.
	require.NoError(t, f.Location.StartFeed(ctx, testTenant, "driver-1", "booking-1", "", 9, 9))

	sample, err := f.Stores.Locations.FindByBookingID(ctx, testTenant, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, 1.5, sample.Lat)
}

func TestRecordTickJitterBounded(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.Location.StartFeed(ctx, testTenant, "driver-1", "booking-1", "", 1.5, 103.8))
	defer f.Location.StopAll()

	prevLat, prevLng := 1.5, 103.8
	for i := 0; i < 50; i++ {
		require.NoError(t, f.Location.RecordTick(ctx, testTenant, "driver-1", "booking-1"))

		sample, err := f.Stores.Locations.FindByBookingID(ctx, testTenant, "booking-1")
		require.NoError(t, err)
		assert.LessOrEqual(t, math.Abs(sample.Lat-prevLat), maxJitterDegrees)
		assert.LessOrEqual(t, math.Abs(sample.Lng-prevLng), maxJitterDegrees)
		prevLat, prevLng = sample.Lat, sample.Lng
	}
}

func TestStopFeedRemovesSample(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.Location.StartFeed(ctx, testTenant, "driver-1", "booking-1", "", 1.5, 103.8))
	require.NoError(t, f.Location.StopFeed(ctx, testTenant, "driver-1", "booking-1"))

	_, err := f.Stores.Locations.FindByBookingID(ctx, testTenant, "booking-1")
	assert.Equal(t, repository.ErrNotFound, err)

	// Ticks after stop must not resurrect the sample.
	require.NoError(t, f.Location.RecordTick(ctx, testTenant, "driver-1", "booking-1"))
	_, err = f.Stores.Locations.FindByBookingID(ctx, testTenant, "booking-1")
	assert.Equal(t, repository.ErrNotFound, err)
}

func TestStopFeedWithoutStartStillDeletes(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.Location.StopFeed(context.Background(), testTenant, "driver-1", "booking-1"))
}

func TestCurrentLocation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.Location.StartFeed(ctx, testTenant, "driver-1", "booking-1", "", 1.5, 103.8))
	defer f.Location.StopAll()

	result := f.Location.CurrentLocation(ctx, &model.TrackingRequest{TenantID: testTenant, BookingID: "booking-1"})
	require.NoError(t, result.Error)

	result = f.Location.CurrentLocation(ctx, &model.TrackingRequest{TenantID: testTenant, BookingID: "missing"})
	require.Error(t, result.Error)
	assert.Equal(t, "NOT_FOUND", result.Error.(*httpError.CommonError).ResponseCode)
}
