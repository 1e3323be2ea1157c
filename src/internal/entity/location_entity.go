package entity

import "time"

// LocationSample is the live position of a driver on an in-progress booking.
// It exists only between the booking entering IN_PROGRESS and leaving it.
type LocationSample struct {
	TenantID  string    `json:"tenant_id"`
	DriverID  string    `json:"driver_id"`
	BookingID string    `json:"booking_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	UpdatedAt time.Time `json:"updated_at"`
}
