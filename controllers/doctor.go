package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/docpoint/appointment-server/booking"
	"github.com/docpoint/appointment-server/db"
	"github.com/docpoint/appointment-server/models"
	"github.com/docpoint/appointment-server/notify"
	"github.com/docpoint/appointment-server/utils"
)

// GetDoctors lists all doctors.
func GetDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor
	if err := db.DB.Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctors)
}

// AddDoctor creates a doctor record without a linked user account.
func AddDoctor(c *fiber.Ctx) error {
	var input struct {
		Name           string `json:"name"`
		Specialization string `json:"specialization"`
		Email          string `json:"email"`
		Phone          string `json:"phone"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.Name == "" || input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Name and email are required",
		})
	}

	var existing models.Doctor
	if db.DB.Where("email = ? OR name = ?", input.Email, input.Name).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Doctor already exists",
		})
	}

	doctor := models.Doctor{
		Name:           input.Name,
		Specialization: input.Specialization,
		Email:          input.Email,
		Phone:          input.Phone,
	}
	if err := db.DB.Create(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create doctor",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// DoctorReport runs one of the report kinds for a doctor. The daily summary
// additionally notifies the doctor by SMS, best effort; the outcome rides
// along in the response.
func DoctorReport(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor ID",
		})
	}

	var input struct {
		ReportType string `json:"report_type"`
		DateFilter string `json:"date_filter"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	report, err := booking.Report(db.DB, uint(doctorID), input.ReportType, input.DateFilter)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrDoctorNotFound):
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Doctor not found",
			})
		case errors.Is(err, booking.ErrUnknownReport):
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate report",
			Error:   err.Error(),
		})
	}

	response := fiber.Map{"report": report}

	if input.ReportType == booking.ReportDailySummary {
		var doctor models.Doctor
		if db.DB.First(&doctor, doctorID).Error == nil {
			summary := strings.ReplaceAll(report, "\n", " ")
			response["notifications"] = []notify.Outcome{
				notify.SMSOutcome(doctor.Phone, summary),
			}
		}
	}

	return c.JSON(response)
}
