package entity

import "time"

// Invoice is created exactly once, on the transition to COMPLETED.
type Invoice struct {
	ID            string    `json:"id" db:"id"`
	TenantID      string    `json:"tenant_id" db:"tenant_id"`
	BookingID     string    `json:"booking_id" db:"booking_id"`
	CustomerID    string    `json:"customer_id" db:"customer_id"`
	Amount        float64   `json:"amount" db:"amount"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
