package http

import (
	"booking-service/src/internal/delivery/http/middleware"
	"booking-service/src/internal/model"
	"booking-service/src/internal/usecase"
	"booking-service/src/pkg/log"
	"booking-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type TrackingController struct {
	Log     log.Log
	UseCase *usecase.LocationUseCase
}

func NewTrackingController(useCase *usecase.LocationUseCase, logger log.Log) *TrackingController {
	return &TrackingController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *TrackingController) CurrentLocation(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.TrackingRequest{
		TenantID:  auth.Metadata.TenantID,
		BookingID: ctx.Params("id"),
	}

	result := c.UseCase.CurrentLocation(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Current Location", fiber.StatusOK, ctx)
}
