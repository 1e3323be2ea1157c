package http

import (
	"booking-service/src/internal/delivery/http/middleware"
	"booking-service/src/internal/model"
	"booking-service/src/internal/usecase"
	"booking-service/src/pkg/log"
	"booking-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type DispatchController struct {
	Log     log.Log
	UseCase *usecase.DispatchUseCase
}

func NewDispatchController(useCase *usecase.DispatchUseCase, logger log.Log) *DispatchController {
	return &DispatchController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *DispatchController) Assign(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.AssignRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("DispatchController.Assign", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.TenantID = auth.Metadata.TenantID

	result := c.UseCase.Assign(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Assign Booking", fiber.StatusOK, ctx)
}

func (c *DispatchController) AutoAssign(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.AutoAssignRequest{
		TenantID:  auth.Metadata.TenantID,
		BookingID: ctx.Params("id"),
	}

	result := c.UseCase.AutoAssign(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Auto Assign Booking", fiber.StatusOK, ctx)
}
