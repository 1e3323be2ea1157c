package model

import (
	"time"

	"booking-service/src/internal/entity"
)

type LocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// CreateBookingRequest carries either a routeId (scheduled-seat and private
// services) or an ad-hoc kind with its detail payload. TenantID and CustomerID
// come from the bearer token, never the body.
type CreateBookingRequest struct {
	TenantID      string                `json:"-" validate:"required"`
	CustomerID    string                `json:"-" validate:"required"`
	RouteID       string                `json:"routeId,omitempty"`
	Kind          string                `json:"kind,omitempty" validate:"omitempty,oneof=SCHEDULED_SEAT PRIVATE PARCEL POINT_TO_POINT AIRPORT_TRANSFER"`
	Adults        int                   `json:"adults" validate:"min=0,max=100"`
	Children      int                   `json:"children" validate:"min=0,max=100"`
	CouponCode    string                `json:"couponCode,omitempty"`
	PaymentMethod string                `json:"paymentMethod" validate:"required,oneof=CASH TRANSFER CORPORATE"`
	Pickup        LocationRequest       `json:"pickup"`
	Drop          LocationRequest       `json:"drop"`
	Details       entity.BookingDetails `json:"details"`
}

type AssignRequest struct {
	TenantID  string `json:"-" validate:"required"`
	BookingID string `json:"bookingId" validate:"required"`
	DriverID  string `json:"driverId" validate:"required"`
	VehicleID string `json:"vehicleId" validate:"required"`
}

type AutoAssignRequest struct {
	TenantID  string `json:"-" validate:"required"`
	BookingID string `json:"bookingId" validate:"required"`
}

type AdvanceRequest struct {
	TenantID  string `json:"-" validate:"required"`
	BookingID string `json:"bookingId" validate:"required"`
	Event     string `json:"event" validate:"required,oneof=start complete cancel"`
}

type ListBookingsRequest struct {
	TenantID   string `json:"-" validate:"required"`
	CustomerID string `json:"customerId,omitempty"`
	DriverID   string `json:"driverId,omitempty"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=PENDING ASSIGNED CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
}

type QuoteRequest struct {
	TenantID   string `json:"-" validate:"required"`
	UserID     string `json:"-" validate:"required"`
	RouteID    string `json:"routeId" validate:"required"`
	Adults     int    `json:"adults" validate:"min=0,max=100"`
	Children   int    `json:"children" validate:"min=0,max=100"`
	CouponCode string `json:"couponCode,omitempty"`
}

// QuoteResponse is the price breakdown; all amounts are rounded to 2 decimals
// at this boundary only.
type QuoteResponse struct {
	RouteID    string  `json:"routeId"`
	AdultPrice float64 `json:"adultPrice"`
	ChildPrice float64 `json:"childPrice"`
	Adults     int     `json:"adults"`
	Children   int     `json:"children"`
	Subtotal   float64 `json:"subtotal"`
	Discount   float64 `json:"discount,omitempty"`
	Total      float64 `json:"total"`
}

type TrackingRequest struct {
	TenantID  string `json:"-" validate:"required"`
	BookingID string `json:"bookingId" validate:"required"`
}

type BookingResponse struct {
	ID          string                `json:"id"`
	CustomerID  string                `json:"customerId"`
	RouteID     *string               `json:"routeId,omitempty"`
	Kind        entity.ServiceKind    `json:"kind"`
	Status      entity.BookingStatus  `json:"status"`
	DriverID    *string               `json:"driverId,omitempty"`
	VehicleID   *string               `json:"vehicleId,omitempty"`
	Adults      int                   `json:"adults"`
	Children    int                   `json:"children"`
	Price       float64               `json:"price"`
	Details     entity.BookingDetails `json:"details,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	CompletedAt *time.Time            `json:"completedAt,omitempty"`
}
