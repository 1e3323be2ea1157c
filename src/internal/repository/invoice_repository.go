package repository

import (
	"context"
	"database/sql"
	"errors"

	"booking-service/src/internal/entity"
	"booking-service/src/pkg/databases/mysql"
)

type InvoiceRepositoryMySQL struct {
	DB mysql.DBInterface
}

func NewInvoiceRepository(db mysql.DBInterface) *InvoiceRepositoryMySQL {
	return &InvoiceRepositoryMySQL{DB: db}
}

func (r *InvoiceRepositoryMySQL) Insert(ctx context.Context, invoice *entity.Invoice) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	// booking_id carries a unique index so a completed booking can never get a
	// second invoice.
	query := `
		INSERT INTO invoices (id, tenant_id, booking_id, customer_id, amount, payment_method, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(ctx, query,
		invoice.ID, invoice.TenantID, invoice.BookingID, invoice.CustomerID,
		invoice.Amount, invoice.PaymentMethod, invoice.CreatedAt,
	)
	return err
}

func (r *InvoiceRepositoryMySQL) FindByBookingID(ctx context.Context, tenantID, bookingID string) (*entity.Invoice, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var invoice entity.Invoice
	query := `
		SELECT id, tenant_id, booking_id, customer_id, amount, payment_method, created_at
		FROM invoices
		WHERE tenant_id = ? AND booking_id = ?
	`
	err = db.GetContext(ctx, &invoice, query, tenantID, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *InvoiceRepositoryMySQL) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]entity.Invoice, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	invoices := []entity.Invoice{}
	query := `
		SELECT id, tenant_id, booking_id, customer_id, amount, payment_method, created_at
		FROM invoices
		WHERE tenant_id = ? AND customer_id = ?
		ORDER BY created_at
	`
	if err := db.SelectContext(ctx, &invoices, query, tenantID, customerID); err != nil {
		return nil, err
	}

	return invoices, nil
}
