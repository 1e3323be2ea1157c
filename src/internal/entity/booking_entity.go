package entity

import "time"

type BookingStatus string

const (
	StatusPending    BookingStatus = "PENDING"
	StatusAssigned   BookingStatus = "ASSIGNED"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusCancelled  BookingStatus = "CANCELLED"
)

// AllowedTransitions is the booking state flow as data. Dispatch confirms a
// pending booking directly; ASSIGNED only exists on legacy rows and may still be
// cancelled or confirmed when read back. A confirmed booking can be cancelled
// until the trip starts, releasing its driver, vehicle and seats.
var AllowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusAssigned:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

func CanTransition(from, to BookingStatus) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// HasDriver reports whether a booking in this status must carry a driver.
func (s BookingStatus) HasDriver() bool {
	switch s {
	case StatusAssigned, StatusConfirmed, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type ServiceKind string

const (
	KindScheduledSeat   ServiceKind = "SCHEDULED_SEAT"
	KindPrivate         ServiceKind = "PRIVATE"
	KindParcel          ServiceKind = "PARCEL"
	KindPointToPoint    ServiceKind = "POINT_TO_POINT"
	KindAirportTransfer ServiceKind = "AIRPORT_TRANSFER"
)

func (k ServiceKind) Valid() bool {
	switch k {
	case KindScheduledSeat, KindPrivate, KindParcel, KindPointToPoint, KindAirportTransfer:
		return true
	}
	return false
}

// RequiresRoute reports whether bookings of this kind must reference a route.
// Parcel, point-to-point and airport transfers are ad-hoc.
func (k ServiceKind) RequiresRoute() bool {
	return k == KindScheduledSeat || k == KindPrivate
}

type Booking struct {
	ID            string        `json:"id" db:"id"`
	TenantID      string        `json:"tenant_id" db:"tenant_id"`
	CustomerID    string        `json:"customer_id" db:"customer_id"`
	RouteID       *string       `json:"route_id,omitempty" db:"route_id"`
	Kind          ServiceKind   `json:"kind" db:"kind"`
	Status        BookingStatus `json:"status" db:"status"`
	DriverID      *string       `json:"driver_id,omitempty" db:"driver_id"`
	VehicleID     *string       `json:"vehicle_id,omitempty" db:"vehicle_id"`
	Adults        int           `json:"adults" db:"adults"`
	Children      int           `json:"children" db:"children"`
	Price         float64       `json:"price" db:"price"`
	PaymentMethod string        `json:"payment_method" db:"payment_method"`
	Details       []byte        `json:"-" db:"details"` // JSON-encoded BookingDetails
	PickupLat     float64       `json:"pickup_lat" db:"pickup_lat"`
	PickupLng     float64       `json:"pickup_lng" db:"pickup_lng"`
	DropLat       float64       `json:"drop_lat" db:"drop_lat"`
	DropLng       float64       `json:"drop_lng" db:"drop_lng"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty" db:"completed_at"`
}

// BookingDetails is the tagged payload per service kind: exactly one variant is
// set, matching Booking.Kind.
type BookingDetails struct {
	ScheduledSeat   *SeatDetail     `json:"scheduled_seat,omitempty"`
	Private         *PrivateDetail  `json:"private,omitempty"`
	Parcel          *ParcelDetail   `json:"parcel,omitempty"`
	PointToPoint    *TransferDetail `json:"point_to_point,omitempty"`
	AirportTransfer *TransferDetail `json:"airport_transfer,omitempty"`
}

type SeatDetail struct {
	Seats          int      `json:"seats"`
	PassengerNames []string `json:"passenger_names,omitempty"`
}

type PrivateDetail struct {
	PickupAddress string `json:"pickup_address"`
	DropAddress   string `json:"drop_address"`
	Notes         string `json:"notes,omitempty"`
}

type ParcelDetail struct {
	PickupAddress   string  `json:"pickup_address"`
	DeliveryAddress string  `json:"delivery_address"`
	WeightKg        float64 `json:"weight_kg"`
	RecipientName   string  `json:"recipient_name"`
	RecipientPhone  string  `json:"recipient_phone"`
	FragileContents bool    `json:"fragile_contents,omitempty"`
	DeclaredValue   float64 `json:"declared_value,omitempty"`
}

type TransferDetail struct {
	PickupAddress string `json:"pickup_address"`
	DropAddress   string `json:"drop_address"`
	FlightNumber  string `json:"flight_number,omitempty"`
	Passengers    int    `json:"passengers"`
}

type BookingFilter struct {
	CustomerID *string
	DriverID   *string
	Status     *BookingStatus
}
