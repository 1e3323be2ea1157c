package usecase

import (
	"context"
	"fmt"

	"booking-service/src/internal/repository"
	httpError "booking-service/src/pkg/http-error"
	"booking-service/src/pkg/log"
	"booking-service/src/pkg/utils"
)

type InvoiceUseCase struct {
	Log               log.Log
	InvoiceRepository repository.InvoiceRepository
}

func NewInvoiceUseCase(logger log.Log, invoiceRepository repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{
		Log:               logger,
		InvoiceRepository: invoiceRepository,
	}
}

func (c *InvoiceUseCase) ListByCustomer(ctx context.Context, tenantID, customerID string) utils.Result {
	var result utils.Result

	invoices, err := c.InvoiceRepository.ListByCustomer(ctx, tenantID, customerID)
	if err != nil {
		result.Error = internalError(c.Log, "invoice-usecase", "ListByCustomer", err)
		return result
	}

	result.Data = invoices
	return result
}

func (c *InvoiceUseCase) FindByBooking(ctx context.Context, tenantID, bookingID string) utils.Result {
	var result utils.Result

	invoice, err := c.InvoiceRepository.FindByBookingID(ctx, tenantID, bookingID)
	if err == repository.ErrNotFound {
		errObj := httpError.NewNotFound()
		errObj.Message = fmt.Sprintf("no invoice for booking %s", bookingID)
		result.Error = errObj
		return result
	}
	if err != nil {
		result.Error = internalError(c.Log, "invoice-usecase", "FindByBooking", err)
		return result
	}

	result.Data = invoice
	return result
}
