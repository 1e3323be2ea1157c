package http

import (
	"booking-service/src/internal/delivery/http/middleware"
	"booking-service/src/internal/model"
	"booking-service/src/internal/usecase"
	"booking-service/src/pkg/log"
	"booking-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type BookingController struct {
	Log     log.Log
	UseCase *usecase.BookingUseCase
	Pricing *usecase.PricingUseCase
	Trip    *usecase.TripUseCase
}

func NewBookingController(useCase *usecase.BookingUseCase, pricing *usecase.PricingUseCase, trip *usecase.TripUseCase, logger log.Log) *BookingController {
	return &BookingController{
		Log:     logger,
		UseCase: useCase,
		Pricing: pricing,
		Trip:    trip,
	}
}

func (c *BookingController) CreateBooking(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.CreateBookingRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("BookingController.CreateBooking", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.TenantID = auth.Metadata.TenantID
	request.CustomerID = auth.Metadata.UserID

	result := c.UseCase.CreateBooking(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Create Booking", fiber.StatusCreated, ctx)
}

func (c *BookingController) ListBookings(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.ListBookingsRequest{
		TenantID:   auth.Metadata.TenantID,
		CustomerID: ctx.Query("customerId"),
		DriverID:   ctx.Query("driverId"),
		Status:     ctx.Query("status"),
	}

	result := c.UseCase.ListBookings(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Bookings", fiber.StatusOK, ctx)
}

func (c *BookingController) BookingDetail(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.BookingDetail(ctx.Context(), auth.Metadata.TenantID, ctx.Params("id"))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Booking Detail", fiber.StatusOK, ctx)
}

func (c *BookingController) Quote(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.QuoteRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("BookingController.Quote", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.TenantID = auth.Metadata.TenantID
	request.UserID = auth.Metadata.UserID

	result := c.Pricing.Quote(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Quote", fiber.StatusOK, ctx)
}

func (c *BookingController) Advance(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.AdvanceRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("BookingController.Advance", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.TenantID = auth.Metadata.TenantID
	request.BookingID = ctx.Params("id")

	result := c.Trip.Advance(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Advance Booking", fiber.StatusOK, ctx)
}
