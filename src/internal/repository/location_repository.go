package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"booking-service/src/internal/entity"
)

// sampleTTL guards against orphaned samples when a feed dies without a stop;
// live feeds refresh the key on every tick.
const sampleTTL = 2 * time.Hour

type LocationRepositoryRedis struct {
	Redis redis.UniversalClient
}

func NewLocationRepository(client redis.UniversalClient) *LocationRepositoryRedis {
	return &LocationRepositoryRedis{Redis: client}
}

func locationKey(tenantID, bookingID string) string {
	return fmt.Sprintf("LOCATION:%s:%s", tenantID, bookingID)
}

func (r *LocationRepositoryRedis) Set(ctx context.Context, sample *entity.LocationSample) error {
	payload, err := json.Marshal(sample)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, locationKey(sample.TenantID, sample.BookingID), payload, sampleTTL).Err()
}

func (r *LocationRepositoryRedis) FindByBookingID(ctx context.Context, tenantID, bookingID string) (*entity.LocationSample, error) {
	data, err := r.Redis.Get(ctx, locationKey(tenantID, bookingID)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sample entity.LocationSample
	if err := json.Unmarshal([]byte(data), &sample); err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *LocationRepositoryRedis) Delete(ctx context.Context, tenantID, bookingID string) error {
	return r.Redis.Del(ctx, locationKey(tenantID, bookingID)).Err()
}
