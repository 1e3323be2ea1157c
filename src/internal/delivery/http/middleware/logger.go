package middleware

import (
	"fmt"
	"time"

	"booking-service/src/pkg/log"

	"github.com/gofiber/fiber/v2"
)

// NewLogger logs one line per request with status and latency.
func NewLogger() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		logger := log.GetLogger()
		meta := fmt.Sprintf("status=%d latency=%s ip=%s", ctx.Response().StatusCode(), time.Since(start), ctx.IP())
		logger.Info("http", fmt.Sprintf("%s %s", ctx.Method(), ctx.Path()), "request", meta)
		return err
	}
}
