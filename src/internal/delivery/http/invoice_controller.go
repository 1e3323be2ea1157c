package http

import (
	"booking-service/src/internal/delivery/http/middleware"
	"booking-service/src/internal/usecase"
	"booking-service/src/pkg/log"
	"booking-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type InvoiceController struct {
	Log     log.Log
	UseCase *usecase.InvoiceUseCase
}

func NewInvoiceController(useCase *usecase.InvoiceUseCase, logger log.Log) *InvoiceController {
	return &InvoiceController{
		Log:     logger,
		UseCase: useCase,
	}
}

func (c *InvoiceController) ListInvoices(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.ListByCustomer(ctx.Context(), auth.Metadata.TenantID, auth.Metadata.UserID)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "List Invoices", fiber.StatusOK, ctx)
}

func (c *InvoiceController) InvoiceByBooking(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	result := c.UseCase.FindByBooking(ctx.Context(), auth.Metadata.TenantID, ctx.Params("id"))
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Invoice Detail", fiber.StatusOK, ctx)
}
