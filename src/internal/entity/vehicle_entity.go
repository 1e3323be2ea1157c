package entity

import "time"

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleInUse       VehicleStatus = "IN_USE"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
	VehicleInactive    VehicleStatus = "INACTIVE"
)

type Vehicle struct {
	ID          string        `json:"id" db:"id"`
	TenantID    string        `json:"tenant_id" db:"tenant_id"`
	PlateNumber string        `json:"plate_number" db:"plate_number"`
	Type        string        `json:"type" db:"type"`
	Capacity    int           `json:"capacity" db:"capacity"`
	RatePerTrip float64       `json:"rate_per_trip" db:"rate_per_trip"`
	Status      VehicleStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty" db:"updated_at"`
}
