package usecase

import (
	"context"
	"fmt"
	"time"

	"booking-service/src/internal/entity"
	"booking-service/src/internal/gateway/messaging"
	"booking-service/src/internal/model"
	"booking-service/src/internal/repository"
	"booking-service/src/pkg/log"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// WatcherUseCase polls booking snapshots per tenant and derives lifecycle
// events from consecutive pairs. Deduplication needs no journal: each event
// kind corresponds to a transition that happens at most once per booking, and
// bookings first seen in a snapshot emit nothing, so a restart never replays.
type WatcherUseCase struct {
	Log               log.Log
	BookingRepository repository.BookingRepository
	Producer          *messaging.BookingProducer
	Config            *viper.Viper
	// Notify receives every derived event after publication, for in-process
	// subscribers.
	Notify func(event *model.BookingEvent)

	prev map[string][]entity.Booking
}

func NewWatcherUseCase(
	logger log.Log,
	bookingRepository repository.BookingRepository,
	producer *messaging.BookingProducer,
	cfg *viper.Viper,
) *WatcherUseCase {
	return &WatcherUseCase{
		Log:               logger,
		BookingRepository: bookingRepository,
		Producer:          producer,
		Config:            cfg,
		prev:              map[string][]entity.Booking{},
	}
}

// DiffSnapshots derives the events implied by moving from prev to curr.
// Identical snapshots produce no events, and bookings absent from prev are
// treated as baseline, not news.
func DiffSnapshots(tenantID string, prev, curr []entity.Booking) []*model.BookingEvent {
	before := make(map[string]*entity.Booking, len(prev))
	for i := range prev {
		before[prev[i].ID] = &prev[i]
	}

	var events []*model.BookingEvent
	emit := func(booking *entity.Booking, kind model.EventKind) {
		event := &model.BookingEvent{
			EventID:    uuid.NewString(),
			TenantID:   tenantID,
			BookingID:  booking.ID,
			Kind:       kind,
			CustomerID: booking.CustomerID,
			OccurredAt: time.Now(),
		}
		if booking.DriverID != nil {
			event.DriverID = *booking.DriverID
		}
		events = append(events, event)
	}

	for i := range curr {
		booking := &curr[i]
		old, seen := before[booking.ID]
		if !seen {
			continue
		}

		if old.DriverID == nil && booking.DriverID != nil {
			emit(booking, model.EventAssigned)
		}
		if old.Status == booking.Status {
			continue
		}
		switch booking.Status {
		case entity.StatusConfirmed:
			emit(booking, model.EventConfirmed)
		case entity.StatusInProgress:
			emit(booking, model.EventStarted)
		case entity.StatusCompleted:
			emit(booking, model.EventCompleted)
		}
	}
	return events
}

// Run polls until the context is cancelled.
func (c *WatcherUseCase) Run(ctx context.Context) {
	interval := time.Duration(c.Config.GetInt("watcher.interval_seconds")) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.Log.Info("watcher-usecase", "watcher started", "Run", interval.String())
	for {
		select {
		case <-ctx.Done():
			c.Log.Info("watcher-usecase", "watcher stopped", "Run", "")
			return
		case <-ticker.C:
			c.Poll(ctx)
		}
	}
}

// Poll takes one snapshot per watched tenant and dispatches the derived
// events. A failed read keeps the previous snapshot, so no transition is lost.
func (c *WatcherUseCase) Poll(ctx context.Context) {
	for _, tenantID := range c.Config.GetStringSlice("watcher.tenants") {
		curr, err := c.BookingRepository.List(ctx, tenantID, entity.BookingFilter{})
		if err != nil {
			c.Log.Error("watcher-usecase", fmt.Sprintf("snapshot failed: %v", err), "Poll", tenantID)
			continue
		}

		for _, event := range DiffSnapshots(tenantID, c.prev[tenantID], curr) {
			c.dispatch(event)
		}
		c.prev[tenantID] = curr
	}
}

func (c *WatcherUseCase) dispatch(event *model.BookingEvent) {
	if c.Producer != nil {
		if err := c.Producer.PublishEvent(event); err != nil {
			c.Log.Error("watcher-usecase", fmt.Sprintf("failed to publish event: %v", err), "dispatch", event.BookingID)
		}
	}
	if c.Notify != nil {
		c.Notify(event)
	}
	c.Log.Info("watcher-usecase", fmt.Sprintf("booking %s %s", event.BookingID, event.Kind), "dispatch", event.EventID)
}
