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
	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
)

// TypeAutoDispatch is the asynq task enqueued after booking creation when
// automatic dispatch is enabled.
const TypeAutoDispatch = "booking:auto-dispatch"

type AutoDispatchPayload struct {
	TenantID  string `json:"tenant_id"`
	BookingID string `json:"booking_id"`
}

type BookingUseCase struct {
	Log               log.Log
	Validate          *validator.Validate
	BookingRepository repository.BookingRepository
	RouteRepository   repository.RouteRepository
	UserRepository    repository.UserRepository
	Pricing           *PricingUseCase
	Config            *viper.Viper
	AsynqClient       *asynq.Client
}

func NewBookingUseCase(
	logger log.Log,
	validate *validator.Validate,
	bookingRepository repository.BookingRepository,
	routeRepository repository.RouteRepository,
	userRepository repository.UserRepository,
	pricing *PricingUseCase,
	cfg *viper.Viper,
	asynqClient *asynq.Client,
) *BookingUseCase {
	return &BookingUseCase{
		Log:               logger,
		Validate:          validate,
		BookingRepository: bookingRepository,
		RouteRepository:   routeRepository,
		UserRepository:    userRepository,
		Pricing:           pricing,
		Config:            cfg,
		AsynqClient:       asynqClient,
	}
}

func (c *BookingUseCase) CreateBooking(ctx context.Context, request *model.CreateBookingRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("booking-usecase", errObj.Message, "CreateBooking", utils.ConvertString(request))
		return result
	}

	var route *entity.Route
	var kind entity.ServiceKind
	if request.RouteID != "" {
		found, err := c.RouteRepository.FindByID(ctx, request.TenantID, request.RouteID)
		if err == repository.ErrNotFound {
			errObj := httpError.NewNotFound()
			errObj.Message = fmt.Sprintf("route with id %s not found", request.RouteID)
			result.Error = errObj
			c.Log.Error("booking-usecase", errObj.Message, "CreateBooking", request.RouteID)
			return result
		}
		if err != nil {
			errObj := httpError.NewInternalServerError()
			errObj.Message = fmt.Sprintf("failed to load route: %v", err)
			result.Error = errObj
			c.Log.Error("booking-usecase", errObj.Message, "CreateBooking", utils.ConvertString(err))
			return result
		}
		route = found
		kind = route.Kind
	} else {
		kind = entity.ServiceKind(request.Kind)
		if !kind.Valid() || kind.RequiresRoute() {
			errObj := httpError.NewBadRequest()
			errObj.Message = "either routeId or an ad-hoc kind (PARCEL, POINT_TO_POINT, AIRPORT_TRANSFER) is required"
			result.Error = errObj
			c.Log.Error("booking-usecase", errObj.Message, "CreateBooking", request.Kind)
			return result
		}
	}

	if errObj := validateDetails(kind, request); errObj != nil {
		result.Error = errObj
		c.Log.Error("booking-usecase", errObj.Message, "CreateBooking", string(kind))
		return result
	}

	passengers := request.Adults + request.Children
	seatsReserved := 0
	if kind == entity.KindScheduledSeat {
		if passengers < 1 {
			errObj := httpError.NewBadRequest()
			errObj.Message = "scheduled-seat bookings need at least one passenger"
			result.Error = errObj
			return result
		}
		ok, err := c.RouteRepository.DecrementSeats(ctx, request.TenantID, route.ID, passengers)
		if err != nil {
			errObj := httpError.NewInternalServerError()
			errObj.Message = fmt.Sprintf("failed to reserve seats: %v", err)
			result.Error = errObj
			c.Log.Error("booking-usecase", errObj.Message, "CreateBooking", utils.ConvertString(err))
			return result
		}
		if !ok {
			errObj := httpError.NewCapacityExceeded()
			errObj.Message = fmt.Sprintf("route %s does not have %d seats left", route.ID, passengers)
			result.Error = errObj
			c.Log.Error("booking-usecase", errObj.Message, "CreateBooking", route.ID)
			return result
		}
		seatsReserved = passengers
	}

	releaseSeats := func() {
		if seatsReserved > 0 {
			if err := c.RouteRepository.IncrementSeats(ctx, request.TenantID, route.ID, seatsReserved); err != nil {
				c.Log.Error("booking-usecase", fmt.Sprintf("failed to release seats: %v", err), "CreateBooking", route.ID)
			}
		}
	}

	var price float64
	if route != nil {
		amount, errObj := c.Pricing.PriceBooking(ctx, route, request.TenantID, request.CustomerID, request.Adults, request.Children, request.CouponCode)
		if errObj != nil {
			releaseSeats()
			result.Error = errObj
			return result
		}
		price = amount
	} else {
		price = c.adhocPrice(kind, request)
	}

	details, err := json.Marshal(request.Details)
	if err != nil {
		releaseSeats()
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to encode booking details: %v", err)
		result.Error = errObj
		c.Log.Error("booking-usecase", errObj.Message, "CreateBooking", utils.ConvertString(err))
		return result
	}

	booking := &entity.Booking{
		ID:            uuid.NewString(),
		TenantID:      request.TenantID,
		CustomerID:    request.CustomerID,
		Kind:          kind,
		Status:        entity.StatusPending,
		Adults:        request.Adults,
		Children:      request.Children,
		Price:         price,
		PaymentMethod: request.PaymentMethod,
		Details:       details,
		PickupLat:     request.Pickup.Latitude,
		PickupLng:     request.Pickup.Longitude,
		DropLat:       request.Drop.Latitude,
		DropLng:       request.Drop.Longitude,
		CreatedAt:     time.Now(),
	}
	if route != nil {
		routeID := route.ID
		booking.RouteID = &routeID
	}

	if err := c.BookingRepository.Insert(ctx, booking); err != nil {
		releaseSeats()
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to persist booking: %v", err)
		result.Error = errObj
		c.Log.Error("booking-usecase", errObj.Message, "CreateBooking", utils.ConvertString(err))
		return result
	}

	c.Log.Info("booking-usecase", "booking created", "CreateBooking", booking.ID)
	c.enqueueAutoDispatch(booking)

	result.Data = converter.BookingToResponse(booking)
	return result
}

func (c *BookingUseCase) ListBookings(ctx context.Context, request *model.ListBookingsRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("booking-usecase", errObj.Message, "ListBookings", utils.ConvertString(request))
		return result
	}

	filter := entity.BookingFilter{}
	if request.CustomerID != "" {
		filter.CustomerID = &request.CustomerID
	}
	if request.DriverID != "" {
		filter.DriverID = &request.DriverID
	}
	if request.Status != "" {
		status := entity.BookingStatus(request.Status)
		filter.Status = &status
	}

	bookings, err := c.BookingRepository.List(ctx, request.TenantID, filter)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to list bookings: %v", err)
		result.Error = errObj
		c.Log.Error("booking-usecase", errObj.Message, "ListBookings", utils.ConvertString(err))
		return result
	}

	result.Data = converter.BookingsToResponses(bookings)
	return result
}

func (c *BookingUseCase) BookingDetail(ctx context.Context, tenantID, bookingID string) utils.Result {
	var result utils.Result

	booking, err := c.BookingRepository.FindByID(ctx, tenantID, bookingID)
	if err == repository.ErrNotFound {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("booking with id %s not found", bookingID)
		result.Error = errObj
		return result
	}
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = fmt.Sprintf("failed to load booking: %v", err)
		result.Error = errObj
		c.Log.Error("booking-usecase", errObj.Message, "BookingDetail", utils.ConvertString(err))
		return result
	}

	result.Data = converter.BookingToResponse(booking)
	return result
}

// adhocPrice resolves the tariff for routeless kinds from configuration.
func (c *BookingUseCase) adhocPrice(kind entity.ServiceKind, request *model.CreateBookingRequest) float64 {
	switch kind {
	case entity.KindParcel:
		base := c.Config.GetFloat64("pricing.parcel_base")
		perKg := c.Config.GetFloat64("pricing.parcel_per_kg")
		if request.Details.Parcel != nil {
			return Round2(base + perKg*request.Details.Parcel.WeightKg)
		}
		return Round2(base)
	case entity.KindAirportTransfer:
		return Round2(c.Config.GetFloat64("pricing.airport_transfer_base"))
	default:
		return Round2(c.Config.GetFloat64("pricing.point_to_point_base"))
	}
}

func (c *BookingUseCase) enqueueAutoDispatch(booking *entity.Booking) {
	if c.AsynqClient == nil || !c.Config.GetBool("dispatch.auto_assign") {
		return
	}
	payload, _ := json.Marshal(AutoDispatchPayload{TenantID: booking.TenantID, BookingID: booking.ID})
	task := asynq.NewTask(TypeAutoDispatch, payload)
	if _, err := c.AsynqClient.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		c.Log.Error("booking-usecase", fmt.Sprintf("failed to enqueue auto dispatch: %v", err), "CreateBooking", booking.ID)
		return
	}
	c.Log.Info("booking-usecase", "auto dispatch enqueued", "CreateBooking", booking.ID)
}

// validateDetails enforces the per-kind detail schema before anything is
// persisted.
func validateDetails(kind entity.ServiceKind, request *model.CreateBookingRequest) *httpError.CommonError {
	fail := func(msg string) *httpError.CommonError {
		errObj := httpError.NewBadRequest()
		errObj.Message = msg
		return errObj
	}

	switch kind {
	case entity.KindParcel:
		d := request.Details.Parcel
		if d == nil {
			return fail("parcel bookings require parcel details")
		}
		if d.PickupAddress == "" || d.DeliveryAddress == "" {
			return fail("parcel bookings require pickup and delivery addresses")
		}
		if d.WeightKg <= 0 {
			return fail("parcel weight must be positive")
		}
	case entity.KindPointToPoint:
		d := request.Details.PointToPoint
		if d == nil || d.PickupAddress == "" || d.DropAddress == "" {
			return fail("point-to-point bookings require pickup and drop addresses")
		}
	case entity.KindAirportTransfer:
		d := request.Details.AirportTransfer
		if d == nil || d.PickupAddress == "" || d.DropAddress == "" {
			return fail("airport transfers require pickup and drop addresses")
		}
	case entity.KindPrivate:
		d := request.Details.Private
		if d == nil || d.PickupAddress == "" {
			return fail("private trips require a pickup address")
		}
	}
	return nil
}
