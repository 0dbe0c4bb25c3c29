package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/docpoint/appointment-server/controllers"
)

// SetupAppointmentRoutes configures booking and availability routes
func SetupAppointmentRoutes(app *fiber.App) {
	app.Get("/appointments", controllers.GetAppointments)
	app.Post("/appointments/book", controllers.BookAppointment)
	app.Post("/appointments/:id/cancel", controllers.CancelAppointment)

	app.Get("/availability/:doctor/:date", controllers.GetAvailability)
}
