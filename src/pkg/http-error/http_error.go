package httpError

import (
	"fmt"
	"net/http"
)

// CommonError is the typed failure carried through utils.Result. Code maps the
// core error kinds onto HTTP statuses: validation 400, missing id 404, invalid
// transition / resource unavailable 409, capacity exceeded 422.
type CommonError struct {
	Code         int    `json:"code"`
	ResponseCode string `json:"responseCode"`
	Message      string `json:"message"`
}

func (e *CommonError) Error() string {
	return fmt.Sprintf("%s: %s", e.ResponseCode, e.Message)
}

func New(code int, responseCode, message string) *CommonError {
	return &CommonError{Code: code, ResponseCode: responseCode, Message: message}
}

func NewBadRequest() *CommonError {
	return New(http.StatusBadRequest, "VALIDATION_ERROR", "bad request")
}

func NewUnauthorized() *CommonError {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
}

func NewNotFound() *CommonError {
	return New(http.StatusNotFound, "NOT_FOUND", "resource not found")
}

// NewConflict covers both invalid state transitions and busy driver/vehicle
// reservations.
func NewConflict() *CommonError {
	return New(http.StatusConflict, "CONFLICT", "resource state conflict")
}

func NewInvalidTransition() *CommonError {
	return New(http.StatusConflict, "INVALID_TRANSITION", "status transition not allowed")
}

func NewResourceUnavailable() *CommonError {
	return New(http.StatusConflict, "RESOURCE_UNAVAILABLE", "driver or vehicle is not free")
}

func NewCapacityExceeded() *CommonError {
	return New(http.StatusUnprocessableEntity, "CAPACITY_EXCEEDED", "not enough seats left")
}

func NewInternalServerError() *CommonError {
	return New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
}
