package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"booking-service/src/internal/entity"
	"booking-service/src/internal/model"
	"booking-service/src/internal/repository"
	httpError "booking-service/src/pkg/http-error"
	"booking-service/src/pkg/log"
	"booking-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"googlemaps.github.io/maps"
)

// maxJitterDegrees bounds the simulated movement per tick.
const maxJitterDegrees = 0.001

type feed struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// LocationUseCase simulates a live GPS stream: one goroutine per in-progress
// booking, started on trip start and torn down synchronously on trip end.
type LocationUseCase struct {
	Log                log.Log
	Validate           *validator.Validate
	LocationRepository repository.LocationRepository
	Geo                *maps.Client
	Config             *viper.Viper

	mu    sync.Mutex
	feeds map[string]*feed
}

func NewLocationUseCase(
	logger log.Log,
	validate *validator.Validate,
	locationRepository repository.LocationRepository,
	geo *maps.Client,
	cfg *viper.Viper,
) *LocationUseCase {
	return &LocationUseCase{
		Log:                logger,
		Validate:           validate,
		LocationRepository: locationRepository,
		Geo:                geo,
		Config:             cfg,
		feeds:              map[string]*feed{},
	}
}

func feedKey(driverID, bookingID string) string {
	return driverID + "/" + bookingID
}

// StartFeed seeds a location sample at origin and begins the recurring tick.
// Starting an already-running feed is a no-op, never a duplicate timer.
func (c *LocationUseCase) StartFeed(ctx context.Context, tenantID, driverID, bookingID, pickupAddress string, lat, lng float64) error {
	if lat == 0 && lng == 0 {
		lat, lng = c.resolveOrigin(ctx, pickupAddress)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := feedKey(driverID, bookingID)
	if _, running := c.feeds[key]; running {
		c.Log.Debug("location-usecase", "feed already running", "StartFeed", key)
		return nil
	}

	sample := &entity.LocationSample{
		TenantID:  tenantID,
		DriverID:  driverID,
		BookingID: bookingID,
		Lat:       lat,
		Lng:       lng,
		UpdatedAt: time.Now(),
	}
	if err := c.LocationRepository.Set(ctx, sample); err != nil {
		return err
	}

	feedCtx, cancel := context.WithCancel(context.Background())
	f := &feed{cancel: cancel, done: make(chan struct{})}
	c.feeds[key] = f
	go c.run(feedCtx, f, tenantID, driverID, bookingID)

	c.Log.Info("location-usecase", "feed started", "StartFeed", key)
	return nil
}

// StopFeed cancels the tick and removes the sample. It returns only after the
// feed goroutine has exited, so no sample is written afterwards.
func (c *LocationUseCase) StopFeed(ctx context.Context, tenantID, driverID, bookingID string) error {
	c.mu.Lock()
	key := feedKey(driverID, bookingID)
	f, running := c.feeds[key]
	if running {
		delete(c.feeds, key)
	}
	c.mu.Unlock()

	if running {
		f.cancel()
		<-f.done
	}

	if err := c.LocationRepository.Delete(ctx, tenantID, bookingID); err != nil {
		c.Log.Error("location-usecase", fmt.Sprintf("failed to delete sample: %v", err), "StopFeed", key)
		return err
	}
	c.Log.Info("location-usecase", "feed stopped", "StopFeed", key)
	return nil
}

// StopAll tears down every live feed, for graceful shutdown.
func (c *LocationUseCase) StopAll() {
	c.mu.Lock()
	feeds := c.feeds
	c.feeds = map[string]*feed{}
	c.mu.Unlock()

	for _, f := range feeds {
		f.cancel()
		<-f.done
	}
}

func (c *LocationUseCase) run(ctx context.Context, f *feed, tenantID, driverID, bookingID string) {
	defer close(f.done)

	interval := time.Duration(c.Config.GetInt("feed.interval_seconds")) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.RecordTick(ctx, tenantID, driverID, bookingID); err != nil {
				c.Log.Error("location-usecase", fmt.Sprintf("tick failed: %v", err), "run", feedKey(driverID, bookingID))
			}
		}
	}
}

// RecordTick perturbs the current sample by at most maxJitterDegrees per axis
// and refreshes its timestamp.
func (c *LocationUseCase) RecordTick(ctx context.Context, tenantID, driverID, bookingID string) error {
	if ctx.Err() != nil {
		return nil
	}

	sample, err := c.LocationRepository.FindByBookingID(ctx, tenantID, bookingID)
	if err == repository.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if sample.DriverID != driverID {
		return nil
	}

	sample.Lat += (rand.Float64()*2 - 1) * maxJitterDegrees
	sample.Lng += (rand.Float64()*2 - 1) * maxJitterDegrees
	sample.UpdatedAt = time.Now()
	return c.LocationRepository.Set(ctx, sample)
}

// CurrentLocation returns the live sample for a booking, if its trip is in
// progress.
func (c *LocationUseCase) CurrentLocation(ctx context.Context, request *model.TrackingRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	sample, err := c.LocationRepository.FindByBookingID(ctx, request.TenantID, request.BookingID)
	if err == repository.ErrNotFound {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("no live location for booking %s", request.BookingID)
		result.Error = errObj
		return result
	}
	if err != nil {
		result.Error = internalError(c.Log, "location-usecase", "CurrentLocation", err)
		return result
	}

	result.Data = sample
	return result
}

// resolveOrigin geocodes the pickup address when a maps client is configured,
// falling back to the tenant default coordinate.
func (c *LocationUseCase) resolveOrigin(ctx context.Context, pickupAddress string) (float64, float64) {
	if c.Geo != nil && pickupAddress != "" {
		results, err := c.Geo.Geocode(ctx, &maps.GeocodingRequest{Address: pickupAddress})
		if err == nil && len(results) > 0 {
			loc := results[0].Geometry.Location
			return loc.Lat, loc.Lng
		}
		if err != nil {
			c.Log.Error("location-usecase", fmt.Sprintf("geocode failed: %v", err), "resolveOrigin", pickupAddress)
		}
	}
	return c.Config.GetFloat64("feed.default_lat"), c.Config.GetFloat64("feed.default_lng")
}
