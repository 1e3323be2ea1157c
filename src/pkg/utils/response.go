package utils

import (
	"encoding/json"
	"fmt"

	httpError "booking-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

// Result is the uniform usecase return value: either Data or a typed Error.
type Result struct {
	Data  interface{}
	Error error
}

type responseBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
}

type errorBody struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Code         int    `json:"code"`
	ResponseCode string `json:"responseCode,omitempty"`
}

func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(responseBody{
		Success: true,
		Message: message,
		Code:    code,
		Data:    data,
	})
}

func ResponseError(err error, ctx *fiber.Ctx) error {
	if commonErr, ok := err.(*httpError.CommonError); ok {
		return ctx.Status(commonErr.Code).JSON(errorBody{
			Success:      false,
			Message:      commonErr.Message,
			Code:         commonErr.Code,
			ResponseCode: commonErr.ResponseCode,
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(errorBody{
		Success: false,
		Message: err.Error(),
		Code:    fiber.StatusInternalServerError,
	})
}

// ConvertString renders any value for log metadata.
func ConvertString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	case []byte:
		return string(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}
