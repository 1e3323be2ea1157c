package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"booking-service/src/internal/entity"
	"booking-service/src/internal/model"
	"booking-service/src/internal/model/converter"
	"booking-service/src/internal/repository"
	httpError "booking-service/src/pkg/http-error"
	"booking-service/src/pkg/log"
	"booking-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// TripUseCase drives the confirmed booking through its trip: start moves it to
// IN_PROGRESS and opens the location feed, complete settles it and invoices
// exactly once, cancel aborts a booking before the trip starts and hands back
// its driver, vehicle and seats.
type TripUseCase struct {
	Log               log.Log
	Validate          *validator.Validate
	BookingRepository repository.BookingRepository
	DriverRepository  repository.DriverRepository
	VehicleRepository repository.VehicleRepository
	RouteRepository   repository.RouteRepository
	InvoiceRepository repository.InvoiceRepository
	Location          *LocationUseCase
}

func NewTripUseCase(
	logger log.Log,
	validate *validator.Validate,
	bookingRepository repository.BookingRepository,
	driverRepository repository.DriverRepository,
	vehicleRepository repository.VehicleRepository,
	routeRepository repository.RouteRepository,
	invoiceRepository repository.InvoiceRepository,
	location *LocationUseCase,
) *TripUseCase {
	return &TripUseCase{
		Log:               logger,
		Validate:          validate,
		BookingRepository: bookingRepository,
		DriverRepository:  driverRepository,
		VehicleRepository: vehicleRepository,
		RouteRepository:   routeRepository,
		InvoiceRepository: invoiceRepository,
		Location:          location,
	}
}

func (c *TripUseCase) Advance(ctx context.Context, request *model.AdvanceRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("trip-usecase", errObj.Message, "Advance", utils.ConvertString(request))
		return result
	}

	booking, err := c.BookingRepository.FindByID(ctx, request.TenantID, request.BookingID)
	if err == repository.ErrNotFound {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("booking with id %s not found", request.BookingID)
		result.Error = errObj
		return result
	}
	if err != nil {
		result.Error = internalError(c.Log, "trip-usecase", "Advance", err)
		return result
	}

	switch request.Event {
	case "start":
		return c.start(ctx, booking)
	case "complete":
		return c.complete(ctx, booking)
	default:
		return c.cancel(ctx, booking)
	}
}

func (c *TripUseCase) start(ctx context.Context, booking *entity.Booking) utils.Result {
	var result utils.Result

	if errObj := c.transition(ctx, booking, entity.StatusInProgress, nil, nil); errObj != nil {
		result.Error = errObj
		return result
	}

	if booking.DriverID != nil {
		ok, err := c.DriverRepository.UpdateStatus(ctx, booking.TenantID, *booking.DriverID, entity.DriverBusy, entity.DriverOnTrip, booking.VehicleID)
		if err != nil {
			result.Error = internalError(c.Log, "trip-usecase", "start", err)
			return result
		}
		if !ok {
			c.Log.Error("trip-usecase", fmt.Sprintf("driver %s was not BUSY at trip start", *booking.DriverID), "start", booking.ID)
		}

		if err := c.Location.StartFeed(ctx, booking.TenantID, *booking.DriverID, booking.ID, pickupAddress(booking), booking.PickupLat, booking.PickupLng); err != nil {
			c.Log.Error("trip-usecase", fmt.Sprintf("failed to start location feed: %v", err), "start", booking.ID)
		}
	}

	c.Log.Info("trip-usecase", "trip started", "start", booking.ID)
	return c.reload(ctx, booking.TenantID, booking.ID)
}

func (c *TripUseCase) complete(ctx context.Context, booking *entity.Booking) utils.Result {
	var result utils.Result

	if errObj := c.transition(ctx, booking, entity.StatusCompleted, nil, nil); errObj != nil {
		result.Error = errObj
		return result
	}

	if booking.DriverID != nil {
		if err := c.Location.StopFeed(ctx, booking.TenantID, *booking.DriverID, booking.ID); err != nil {
			c.Log.Error("trip-usecase", fmt.Sprintf("failed to stop location feed: %v", err), "complete", booking.ID)
		}
		if _, err := c.DriverRepository.UpdateStatus(ctx, booking.TenantID, *booking.DriverID, entity.DriverOnTrip, entity.DriverFree, nil); err != nil {
			c.Log.Error("trip-usecase", fmt.Sprintf("failed to free driver %s: %v", *booking.DriverID, err), "complete", booking.ID)
		}
	}
	if booking.VehicleID != nil {
		if _, err := c.VehicleRepository.UpdateStatus(ctx, booking.TenantID, *booking.VehicleID, entity.VehicleInUse, entity.VehicleAvailable); err != nil {
			c.Log.Error("trip-usecase", fmt.Sprintf("failed to free vehicle %s: %v", *booking.VehicleID, err), "complete", booking.ID)
		}
	}

	// The CAS above admits exactly one completer, so this insert runs at most
	// once per booking.
	invoice := &entity.Invoice{
		ID:            uuid.NewString(),
		TenantID:      booking.TenantID,
		BookingID:     booking.ID,
		CustomerID:    booking.CustomerID,
		Amount:        booking.Price,
		PaymentMethod: booking.PaymentMethod,
		CreatedAt:     time.Now(),
	}
	if err := c.InvoiceRepository.Insert(ctx, invoice); err != nil {
		result.Error = internalError(c.Log, "trip-usecase", "complete", err)
		return result
	}

	c.Log.Info("trip-usecase", fmt.Sprintf("trip completed, invoice %s issued", invoice.ID), "complete", booking.ID)
	return c.reload(ctx, booking.TenantID, booking.ID)
}

func (c *TripUseCase) cancel(ctx context.Context, booking *entity.Booking) utils.Result {
	var result utils.Result

	if errObj := c.transition(ctx, booking, entity.StatusCancelled, nil, nil); errObj != nil {
		result.Error = errObj
		return result
	}

	// A dispatched booking holds a driver and vehicle until it starts; hand
	// both back. The CANCELLED row itself no longer references them.
	if booking.DriverID != nil {
		if _, err := c.DriverRepository.UpdateStatus(ctx, booking.TenantID, *booking.DriverID, entity.DriverBusy, entity.DriverFree, nil); err != nil {
			c.Log.Error("trip-usecase", fmt.Sprintf("failed to free driver %s: %v", *booking.DriverID, err), "cancel", booking.ID)
		}
	}
	if booking.VehicleID != nil {
		if _, err := c.VehicleRepository.UpdateStatus(ctx, booking.TenantID, *booking.VehicleID, entity.VehicleInUse, entity.VehicleAvailable); err != nil {
			c.Log.Error("trip-usecase", fmt.Sprintf("failed to free vehicle %s: %v", *booking.VehicleID, err), "cancel", booking.ID)
		}
	}

	if booking.Kind == entity.KindScheduledSeat && booking.RouteID != nil {
		seats := booking.Adults + booking.Children
		if err := c.RouteRepository.IncrementSeats(ctx, booking.TenantID, *booking.RouteID, seats); err != nil {
			c.Log.Error("trip-usecase", fmt.Sprintf("failed to restore %d seats: %v", seats, err), "cancel", booking.ID)
		}
	}

	c.Log.Info("trip-usecase", "booking cancelled", "cancel", booking.ID)
	return c.reload(ctx, booking.TenantID, booking.ID)
}

// transition applies from→to through the compare-and-swap update, rejecting
// moves the state flow does not allow.
func (c *TripUseCase) transition(ctx context.Context, booking *entity.Booking, to entity.BookingStatus, driverID, vehicleID *string) *httpError.CommonError {
	if !entity.CanTransition(booking.Status, to) {
		errObj := httpError.NewInvalidTransition()
		errObj.Message = fmt.Sprintf("booking %s cannot go from %s to %s", booking.ID, booking.Status, to)
		c.Log.Error("trip-usecase", errObj.Message, "transition", booking.ID)
		return errObj
	}

	ok, err := c.BookingRepository.UpdateStatus(ctx, booking.TenantID, booking.ID, booking.Status, to, driverID, vehicleID)
	if err != nil {
		return internalError(c.Log, "trip-usecase", "transition", err)
	}
	if !ok {
		errObj := httpError.NewInvalidTransition()
		errObj.Message = fmt.Sprintf("booking %s changed state concurrently", booking.ID)
		return errObj
	}
	return nil
}

func (c *TripUseCase) reload(ctx context.Context, tenantID, bookingID string) utils.Result {
	var result utils.Result

	booking, err := c.BookingRepository.FindByID(ctx, tenantID, bookingID)
	if err != nil {
		result.Error = internalError(c.Log, "trip-usecase", "reload", err)
		return result
	}
	result.Data = converter.BookingToResponse(booking)
	return result
}

// pickupAddress extracts the pickup address out of the per-kind details, when
// the kind carries one.
func pickupAddress(booking *entity.Booking) string {
	var details entity.BookingDetails
	if err := json.Unmarshal(booking.Details, &details); err != nil {
		return ""
	}
	switch {
	case details.Private != nil:
		return details.Private.PickupAddress
	case details.Parcel != nil:
		return details.Parcel.PickupAddress
	case details.PointToPoint != nil:
		return details.PointToPoint.PickupAddress
	case details.AirportTransfer != nil:
		return details.AirportTransfer.PickupAddress
	}
	return ""
}
