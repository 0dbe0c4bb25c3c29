package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/docpoint/appointment-server/booking"
	"github.com/docpoint/appointment-server/db"
	"github.com/docpoint/appointment-server/gcal"
	"github.com/docpoint/appointment-server/models"
	"github.com/docpoint/appointment-server/notify"
	"github.com/docpoint/appointment-server/utils"
)

// GetAppointments lists appointments, optionally filtered by patient or doctor.
func GetAppointments(c *fiber.Ctx) error {
	query := db.DB.Preload("Patient").Preload("Doctor")

	if userID := c.QueryInt("user_id"); userID > 0 {
		query = query.Where("patient_id = ?", userID)
	}
	if doctorID := c.QueryInt("doctor_id"); doctorID > 0 {
		query = query.Where("doctor_id = ?", doctorID)
	}

	var appointments []models.Appointment
	if err := query.Order("date asc, time_slot asc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	for i := range appointments {
		appointments[i].Patient.Password = ""
	}
	return c.JSON(appointments)
}

// BookAppointment reserves a slot and reports the best-effort notification
// outcomes alongside the created appointment. Notification failures never
// undo the booking.
func BookAppointment(c *fiber.Ctx) error {
	var input struct {
		UserID     uint   `json:"user_id"`
		DoctorName string `json:"doctor_name"`
		Date       string `json:"date"`
		TimeSlot   string `json:"time_slot"`
		Symptoms   string `json:"symptoms"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	appointment, err := booking.Book(db.DB, input.UserID, input.DoctorName, input.Date, input.TimeSlot, input.Symptoms)
	if err != nil {
		return bookingError(c, err)
	}

	notifications := notify.BookingOutcomes(appointment.Patient, appointment.Doctor, *appointment)

	appointment.Patient.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Appointment booked",
		"appointment":   appointment,
		"notifications": notifications,
	})
}

// CancelAppointment moves an appointment to cancelled, freeing the slot.
func CancelAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
		})
	}

	appointment, err := booking.Cancel(db.DB, uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found or not cancellable",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment cancelled",
		"appointment": appointment,
	})
}

// GetAvailability returns the free 30-minute slots for a doctor on a date.
// The Google Calendar lookup is advisory and only ever removes slots.
func GetAvailability(c *fiber.Ctx) error {
	doctor := c.Params("doctor")
	date := c.Params("date")

	slots, err := booking.Availability(db.DB, doctor, date, gcal.BusySlots)
	if err != nil {
		return bookingError(c, err)
	}

	return c.JSON(fiber.Map{
		"doctor":          doctor,
		"date":            date,
		"available_slots": slots,
	})
}

// bookingError maps the booking package's sentinel errors onto HTTP statuses.
func bookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, booking.ErrPatientNotFound),
		errors.Is(err, booking.ErrDoctorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, booking.ErrSlotConflict):
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, booking.ErrBadDate),
		errors.Is(err, booking.ErrSlotOffGrid):
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
		Message: "Internal error",
		Error:   err.Error(),
	})
}
