package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"booking-service/src/internal/entity"
	"booking-service/src/internal/model"
	"booking-service/src/internal/model/converter"
	"booking-service/src/internal/repository"
	httpError "booking-service/src/pkg/http-error"
	"booking-service/src/pkg/log"
	"booking-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
)

// DispatchUseCase binds one free driver and one available vehicle to one
// pending booking. Reservations are compare-and-swap on driver and vehicle
// status, so two dispatchers naming the same driver cannot both succeed.
type DispatchUseCase struct {
	Log               log.Log
	Validate          *validator.Validate
	BookingRepository repository.BookingRepository
	DriverRepository  repository.DriverRepository
	VehicleRepository repository.VehicleRepository
}

func NewDispatchUseCase(
	logger log.Log,
	validate *validator.Validate,
	bookingRepository repository.BookingRepository,
	driverRepository repository.DriverRepository,
	vehicleRepository repository.VehicleRepository,
) *DispatchUseCase {
	return &DispatchUseCase{
		Log:               logger,
		Validate:          validate,
		BookingRepository: bookingRepository,
		DriverRepository:  driverRepository,
		VehicleRepository: vehicleRepository,
	}
}

func (c *DispatchUseCase) Assign(ctx context.Context, request *model.AssignRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("dispatch-usecase", errObj.Message, "Assign", utils.ConvertString(request))
		return result
	}

	// Precondition reads, in contract order: booking, driver, vehicle. The
	// authoritative check is the CAS below; these reads exist to report the
	// right error kind for the first failing precondition.
	booking, errObj := c.loadPendingBooking(ctx, request.TenantID, request.BookingID)
	if errObj != nil {
		result.Error = errObj
		return result
	}

	driver, err := c.DriverRepository.FindByID(ctx, request.TenantID, request.DriverID)
	if err == repository.ErrNotFound {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("driver with id %s not found", request.DriverID)
		result.Error = errObj
		return result
	}
	if err != nil {
		result.Error = internalError(c.Log, "dispatch-usecase", "Assign", err)
		return result
	}
	if driver.Status != entity.DriverFree {
		errObj := httpError.NewResourceUnavailable()
		errObj.Message = fmt.Sprintf("driver %s is not free", driver.ID)
		result.Error = errObj
		return result
	}

	vehicle, err := c.VehicleRepository.FindByID(ctx, request.TenantID, request.VehicleID)
	if err == repository.ErrNotFound {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("vehicle with id %s not found", request.VehicleID)
		result.Error = errObj
		return result
	}
	if err != nil {
		result.Error = internalError(c.Log, "dispatch-usecase", "Assign", err)
		return result
	}
	if vehicle.Status != entity.VehicleAvailable {
		errObj := httpError.NewResourceUnavailable()
		errObj.Message = fmt.Sprintf("vehicle %s is not available", vehicle.ID)
		result.Error = errObj
		return result
	}

	confirmed, errObj := c.reserveAndConfirm(ctx, booking, driver.ID, vehicle.ID)
	if errObj != nil {
		result.Error = errObj
		return result
	}

	c.Log.Info("dispatch-usecase", fmt.Sprintf("driver %s and vehicle %s bound", driver.ID, vehicle.ID), "Assign", booking.ID)
	result.Data = converter.BookingToResponse(confirmed)
	return result
}

// AutoAssign picks the first free driver (lowest id) and the cheapest
// compatible available vehicle (lowest id on ties) and runs the same
// reservation as Assign. Candidates lost to a concurrent dispatcher are
// skipped, not errors.
func (c *DispatchUseCase) AutoAssign(ctx context.Context, request *model.AutoAssignRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("dispatch-usecase", errObj.Message, "AutoAssign", utils.ConvertString(request))
		return result
	}

	booking, errObj := c.loadPendingBooking(ctx, request.TenantID, request.BookingID)
	if errObj != nil {
		result.Error = errObj
		return result
	}

	drivers, err := c.DriverRepository.ListByStatus(ctx, request.TenantID, entity.DriverFree)
	if err != nil {
		result.Error = internalError(c.Log, "dispatch-usecase", "AutoAssign", err)
		return result
	}

	vehicles, err := c.VehicleRepository.ListByStatus(ctx, request.TenantID, entity.VehicleAvailable)
	if err != nil {
		result.Error = internalError(c.Log, "dispatch-usecase", "AutoAssign", err)
		return result
	}

	passengers := booking.Adults + booking.Children
	for _, driver := range drivers {
		for _, vehicle := range vehicles {
			if vehicle.Capacity < passengers {
				continue
			}
			confirmed, errObj := c.reserveAndConfirm(ctx, booking, driver.ID, vehicle.ID)
			if errObj != nil {
				if errObj.ResponseCode == "RESOURCE_UNAVAILABLE" {
					continue
				}
				result.Error = errObj
				return result
			}
			c.Log.Info("dispatch-usecase", fmt.Sprintf("auto-assigned driver %s vehicle %s", driver.ID, vehicle.ID), "AutoAssign", booking.ID)
			result.Data = converter.BookingToResponse(confirmed)
			return result
		}
	}

	errObj = httpError.NewResourceUnavailable()
	errObj.Message = "no free driver with a compatible vehicle"
	result.Error = errObj
	c.Log.Error("dispatch-usecase", errObj.Message, "AutoAssign", booking.ID)
	return result
}

// HandleAutoDispatch is the asynq handler for TypeAutoDispatch tasks.
func (c *DispatchUseCase) HandleAutoDispatch(ctx context.Context, task *asynq.Task) error {
	var payload AutoDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}
	result := c.AutoAssign(ctx, &model.AutoAssignRequest{TenantID: payload.TenantID, BookingID: payload.BookingID})
	if result.Error != nil {
		c.Log.Error("dispatch-usecase", result.Error.Error(), "HandleAutoDispatch", payload.BookingID)
		// Unavailable resources and already-dispatched bookings are final for
		// this task; retrying would not change the outcome.
		return nil
	}
	return nil
}

func (c *DispatchUseCase) loadPendingBooking(ctx context.Context, tenantID, bookingID string) (*entity.Booking, *httpError.CommonError) {
	booking, err := c.BookingRepository.FindByID(ctx, tenantID, bookingID)
	if err == repository.ErrNotFound {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("booking with id %s not found", bookingID)
		return nil, errObj
	}
	if err != nil {
		return nil, internalError(c.Log, "dispatch-usecase", "loadPendingBooking", err)
	}
	if booking.Status != entity.StatusPending {
		errObj := httpError.NewInvalidTransition()
		errObj.Message = fmt.Sprintf("booking %s is %s, not PENDING", booking.ID, booking.Status)
		return nil, errObj
	}
	return booking, nil
}

// reserveAndConfirm is the critical section: driver first, vehicle second,
// booking last, with rollback of earlier swaps when a later one loses.
func (c *DispatchUseCase) reserveAndConfirm(ctx context.Context, booking *entity.Booking, driverID, vehicleID string) (*entity.Booking, *httpError.CommonError) {
	tenantID := booking.TenantID

	ok, err := c.DriverRepository.UpdateStatus(ctx, tenantID, driverID, entity.DriverFree, entity.DriverBusy, &vehicleID)
	if err != nil {
		return nil, internalError(c.Log, "dispatch-usecase", "reserveAndConfirm", err)
	}
	if !ok {
		errObj := httpError.NewResourceUnavailable()
		errObj.Message = fmt.Sprintf("driver %s was taken by another dispatch", driverID)
		return nil, errObj
	}

	ok, err = c.VehicleRepository.UpdateStatus(ctx, tenantID, vehicleID, entity.VehicleAvailable, entity.VehicleInUse)
	if err != nil {
		c.releaseDriver(ctx, tenantID, driverID, entity.DriverBusy)
		return nil, internalError(c.Log, "dispatch-usecase", "reserveAndConfirm", err)
	}
	if !ok {
		c.releaseDriver(ctx, tenantID, driverID, entity.DriverBusy)
		errObj := httpError.NewResourceUnavailable()
		errObj.Message = fmt.Sprintf("vehicle %s was taken by another dispatch", vehicleID)
		return nil, errObj
	}

	ok, err = c.BookingRepository.UpdateStatus(ctx, tenantID, booking.ID, booking.Status, entity.StatusConfirmed, &driverID, &vehicleID)
	if err != nil || !ok {
		c.releaseVehicle(ctx, tenantID, vehicleID)
		c.releaseDriver(ctx, tenantID, driverID, entity.DriverBusy)
		if err != nil {
			return nil, internalError(c.Log, "dispatch-usecase", "reserveAndConfirm", err)
		}
		errObj := httpError.NewInvalidTransition()
		errObj.Message = fmt.Sprintf("booking %s changed state during dispatch", booking.ID)
		return nil, errObj
	}

	confirmed, err := c.BookingRepository.FindByID(ctx, tenantID, booking.ID)
	if err != nil {
		return nil, internalError(c.Log, "dispatch-usecase", "reserveAndConfirm", err)
	}
	return confirmed, nil
}

func (c *DispatchUseCase) releaseDriver(ctx context.Context, tenantID, driverID string, from entity.DriverStatus) {
	if _, err := c.DriverRepository.UpdateStatus(ctx, tenantID, driverID, from, entity.DriverFree, nil); err != nil {
		c.Log.Error("dispatch-usecase", fmt.Sprintf("failed to release driver %s: %v", driverID, err), "releaseDriver", tenantID)
	}
}

func (c *DispatchUseCase) releaseVehicle(ctx context.Context, tenantID, vehicleID string) {
	if _, err := c.VehicleRepository.UpdateStatus(ctx, tenantID, vehicleID, entity.VehicleInUse, entity.VehicleAvailable); err != nil {
		c.Log.Error("dispatch-usecase", fmt.Sprintf("failed to release vehicle %s: %v", vehicleID, err), "releaseVehicle", tenantID)
	}
}

func internalError(logger log.Log, context, scope string, err error) *httpError.CommonError {
	errObj := httpError.NewInternalServerError()
	errObj.Message = err.Error()
	logger.Error(context, err.Error(), scope, "")
	return errObj
}
