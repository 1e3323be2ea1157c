package entity

import "time"

type DriverStatus string

const (
	DriverFree   DriverStatus = "FREE"
	DriverBusy   DriverStatus = "BUSY"
	DriverOnTrip DriverStatus = "ON_TRIP"
)

// Driver owns VehicleID only while BUSY or ON_TRIP.
type Driver struct {
	ID           string       `json:"id" db:"id"`
	TenantID     string       `json:"tenant_id" db:"tenant_id"`
	FullName     string       `json:"full_name" db:"full_name"`
	MobileNumber string       `json:"mobile_number" db:"mobile_number"`
	LicenseNo    string       `json:"license_no" db:"license_no"`
	Status       DriverStatus `json:"status" db:"status"`
	VehicleID    *string      `json:"vehicle_id,omitempty" db:"vehicle_id"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time   `json:"updated_at,omitempty" db:"updated_at"`
}
