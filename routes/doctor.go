package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/docpoint/appointment-server/controllers"
)

// SetupDoctorRoutes configures doctor directory and reporting routes
func SetupDoctorRoutes(app *fiber.App) {
	app.Get("/doctors", controllers.GetDoctors)
	app.Post("/doctors", controllers.AddDoctor)
	app.Post("/doctors/:id/reports", controllers.DoctorReport)
}
