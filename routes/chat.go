package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/docpoint/appointment-server/controllers"
)

// SetupChatRoutes configures the natural-language and session routes
func SetupChatRoutes(app *fiber.App) {
	app.Post("/chat", controllers.Chat)
	app.Post("/session", controllers.ManageSession)
	app.Get("/session/:user_id", controllers.GetSessionContext)
}
