package router

import (
	"travel-booking-service/internal/module/booking/handler"
	"travel-booking-service/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

func Initialize(app *fiber.App, handlerBooking *handler.BookingHandler, m *middleware.Middleware) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	bookings := app.Group("/bookings")
	bookings.Post("/check-availability", handlerBooking.CheckAvailability)
	bookings.Post("/create-hold", m.RequireSession, handlerBooking.CreateHold)
	bookings.Get("/create-hold", handlerBooking.ListHolds)
	bookings.Post("/extend-hold", m.RequireSession, handlerBooking.ExtendHold)
	bookings.Post("/cleanup-holds", handlerBooking.CleanupHolds)
	bookings.Get("/cleanup-holds", handlerBooking.CleanupHolds)
	bookings.Post("/initiate-payment", m.RequireSession, handlerBooking.InitiatePaymentHotel)
	bookings.Post("/initiate-payment/hotel", m.RequireSession, handlerBooking.InitiatePaymentHotel)
	bookings.Post("/initiate-payment/service", m.RequireSession, handlerBooking.InitiatePaymentService)
	bookings.Post("/phonepe-callback", handlerBooking.PhonePeCallback)
	bookings.Get("/check-payment-status", handlerBooking.CheckPaymentStatus)

	private := app.Group("/private")
	private.Get("/inventory/overbooking", handlerBooking.PotentialOverbooking)
	private.Get("/inventory/low-availability", handlerBooking.LowAvailability)
	private.Post("/inventory/block", handlerBooking.BlockCapacity)
	private.Post("/inventory/unblock", handlerBooking.UnblockCapacity)

	return app

}
