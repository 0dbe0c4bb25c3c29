package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/docpoint/appointment-server/booking"
	"github.com/docpoint/appointment-server/chat"
	"github.com/docpoint/appointment-server/db"
	"github.com/docpoint/appointment-server/gcal"
	"github.com/docpoint/appointment-server/models"
	"github.com/docpoint/appointment-server/notify"
	"github.com/docpoint/appointment-server/utils"
)

const clarifyReply = "I can help you check availability, book an appointment, " +
	"or generate doctor reports. Please include the doctor's name, a date and, " +
	"for bookings, a time."

// Chat maps a free-text message to one of the tool operations via the regex
// dispatcher. Messages no heuristic recognizes fall through to Gemini, which
// degrades to a canned clarification when not configured.
func Chat(c *fiber.Ctx) error {
	var input struct {
		UserID  uint   `json:"user_id"`
		Message string `json:"message"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var user models.User
	if err := db.DB.First(&user, input.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	intent := chat.Parse(input.Message, time.Now())
	response, notifications := executeIntent(&user, input.Message, intent)

	err := chat.AppendExchange(db.DB, user.ID, chat.Exchange{
		User:      input.Message,
		Assistant: response,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("Failed to persist chat context for user %d: %v", user.ID, err)
	}

	body := fiber.Map{
		"response":  response,
		"user_id":   user.ID,
		"user_role": user.Role,
		"intent":    intent,
	}
	if len(notifications) > 0 {
		body["notifications"] = notifications
	}
	return c.JSON(body)
}

func executeIntent(user *models.User, message string, intent chat.Intent) (string, []notify.Outcome) {
	switch intent.Kind {
	case chat.IntentAvailability:
		if !intent.Complete() {
			return "Please tell me which doctor and which date to check, e.g. " +
				"\"Check availability for Dr. Lee on 2024-06-01\".", nil
		}
		slots, err := booking.Availability(db.DB, intent.DoctorName, intent.Date, gcal.BusySlots)
		if err != nil {
			return err.Error(), nil
		}
		if len(slots) == 0 {
			return fmt.Sprintf("No slots available for %s on %s.", intent.DoctorName, intent.Date), nil
		}
		return fmt.Sprintf("Available slots for %s on %s: %s",
			intent.DoctorName, intent.Date, strings.Join(slots, ", ")), nil

	case chat.IntentBook:
		if user.Role != models.RolePatient {
			return "Only patients can book appointments.", nil
		}
		if !intent.Complete() {
			return "I can help you book an appointment. Please provide: doctor name, " +
				"date, time, and any symptoms you'd like to mention.", nil
		}
		appointment, err := booking.Book(db.DB, user.ID, intent.DoctorName, intent.Date, intent.TimeSlot, intent.Symptoms)
		if err != nil {
			return err.Error(), nil
		}
		outcomes := notify.BookingOutcomes(appointment.Patient, appointment.Doctor, *appointment)
		return fmt.Sprintf("Appointment booked for %s with %s at %s on %s.",
			user.Name, appointment.Doctor.Name, appointment.TimeSlot, appointment.Date), outcomes

	case chat.IntentReport:
		if user.Role != models.RoleDoctor {
			return "Only doctors can request reports.", nil
		}
		var doctor models.Doctor
		if err := db.DB.Where("user_id = ?", user.ID).First(&doctor).Error; err != nil {
			return "Doctor profile not found. Please contact support.", nil
		}
		report, err := booking.Report(db.DB, doctor.ID, intent.ReportType, intent.DateFilter)
		if err != nil {
			if errors.Is(err, booking.ErrUnknownReport) {
				return err.Error(), nil
			}
			return "Failed to generate report: " + err.Error(), nil
		}
		return report, nil
	}

	return clarifyIntent(user, message)
}

// clarifyIntent is the fallback path: ask Gemini, or return the canned reply
// when the LLM is unavailable.
func clarifyIntent(user *models.User, message string) (string, []notify.Outcome) {
	sessionContext, err := chat.GetSession(db.DB, user.ID)
	if err != nil {
		sessionContext = "{}"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reply, err := chat.Reply(ctx, user.Name, string(user.Role), message, sessionContext)
	if err != nil {
		if !errors.Is(err, chat.ErrLLMNotConfigured) {
			log.Printf("LLM fallback failed: %v", err)
		}
		return clarifyReply, nil
	}
	return reply, nil
}
