package route

import (
	"booking-service/src/internal/delivery/http"
	"booking-service/src/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App                *fiber.App
	BookingController  *http.BookingController
	DispatchController *http.DispatchController
	TrackingController *http.TrackingController
	InvoiceController  *http.InvoiceController
	AuthMiddleware     fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(middleware.NewLogger())
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	c.SetupAuthRoute()
}

func (c *RouteConfig) SetupAuthRoute() {
	c.App.Use(c.AuthMiddleware)

	c.App.Post("/bookings/v1", c.BookingController.CreateBooking)
	c.App.Get("/bookings/v1", c.BookingController.ListBookings)
	c.App.Get("/bookings/v1/:id", c.BookingController.BookingDetail)
	c.App.Post("/bookings/v1/quote", c.BookingController.Quote)
	c.App.Post("/bookings/v1/:id/advance", c.BookingController.Advance)

	c.App.Post("/dispatch/v1/assign", c.DispatchController.Assign)
	c.App.Post("/dispatch/v1/:id/auto-assign", c.DispatchController.AutoAssign)

	c.App.Get("/tracking/v1/:id", c.TrackingController.CurrentLocation)

	c.App.Get("/invoices/v1", c.InvoiceController.ListInvoices)
	c.App.Get("/invoices/v1/booking/:id", c.InvoiceController.InvoiceByBooking)
}
