package converter

import (
	"encoding/json"

	"booking-service/src/internal/entity"
	"booking-service/src/internal/model"
)

func BookingToResponse(booking *entity.Booking) *model.BookingResponse {
	resp := &model.BookingResponse{
		ID:          booking.ID,
		CustomerID:  booking.CustomerID,
		RouteID:     booking.RouteID,
		Kind:        booking.Kind,
		Status:      booking.Status,
		DriverID:    booking.DriverID,
		VehicleID:   booking.VehicleID,
		Adults:      booking.Adults,
		Children:    booking.Children,
		Price:       booking.Price,
		CreatedAt:   booking.CreatedAt,
		CompletedAt: booking.CompletedAt,
	}
	if len(booking.Details) > 0 {
		_ = json.Unmarshal(booking.Details, &resp.Details)
	}
	return resp
}

func BookingsToResponses(bookings []entity.Booking) []model.BookingResponse {
	responses := make([]model.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *BookingToResponse(&bookings[i]))
	}
	return responses
}
