package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/docpoint/appointment-server/cron"
	"github.com/docpoint/appointment-server/db"
	"github.com/docpoint/appointment-server/mcpserver"
	"github.com/docpoint/appointment-server/redis"
	"github.com/docpoint/appointment-server/routes"
)

func main() {
	db.Init()
	db.Migrate()
	redis.Init()

	go mcpserver.Start()
	cron.StartCronJobs()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Doctor Appointment System")
	})
	app.Get("/status", statusHandler)

	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupChatRoutes(app)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	log.Fatal(app.Listen(addr))
}

func statusHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"version": "0.1.0",
		"features": fiber.Map{
			"authentication": "Role-based (Patient/Doctor), JWT",
			"appointments":   "30-minute slot scheduling with conflict protection",
			"reports":        "Daily summaries and symptom analytics",
			"integrations":   []string{"Google Calendar", "SMTP Email", "Twilio SMS", "Gemini", "PostgreSQL", "Redis"},
			"conversation":   "Multi-turn support with persisted context",
		},
		"mcp_tools": []string{
			"register_user", "authenticate_user", "manage_session",
			"add_doctor", "check_availability", "book_appointment",
			"doctor_reports", "send_doctor_notification", "get_system_prompts",
		},
		"endpoints": fiber.Map{
			"auth":         []string{"/register", "/login", "/auth/refresh", "/me", "/logout", "/users"},
			"appointments": []string{"/appointments", "/appointments/book", "/availability/:doctor/:date"},
			"doctors":      []string{"/doctors", "/doctors/:id/reports"},
			"chat":         []string{"/chat", "/session", "/session/:user_id"},
		},
	})
}
