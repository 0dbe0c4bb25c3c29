package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/docpoint/appointment-server/controllers"
	"github.com/docpoint/appointment-server/middleware"
)

// SetupAuthRoutes configures registration, login and token management
func SetupAuthRoutes(app *fiber.App) {
	app.Post("/register", controllers.Register)
	app.Post("/login", controllers.Login)
	app.Post("/auth/refresh", controllers.RefreshToken)

	app.Get("/me", middleware.Protected(), controllers.GetCurrentUser)
	app.Post("/logout", middleware.Protected(), controllers.Logout)

	app.Get("/users", controllers.GetUsers)
}
