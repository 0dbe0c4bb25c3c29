package cron

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/docpoint/appointment-server/booking"
	"github.com/docpoint/appointment-server/db"
	"github.com/docpoint/appointment-server/models"
	"github.com/docpoint/appointment-server/notify"
)

// StartCronJobs schedules the morning doctor summaries and the half-hourly
// patient reminders.
func StartCronJobs() {
	c := cron.New()

	if _, err := c.AddFunc("0 7 * * *", sendDailySummaries); err != nil {
		log.Fatalf("Failed to add daily summary job: %v", err)
	}
	if _, err := c.AddFunc("*/30 * * * *", sendAppointmentReminders); err != nil {
		log.Fatalf("Failed to add reminder job: %v", err)
	}

	c.Start()
	log.Println("Cron scheduler started (daily summaries, appointment reminders)")
}

// sendDailySummaries mails every doctor their daily summary for today.
func sendDailySummaries() {
	var doctors []models.Doctor
	if err := db.DB.Find(&doctors).Error; err != nil {
		log.Printf("Error fetching doctors for daily summaries: %v", err)
		return
	}

	today := time.Now().Format("2006-01-02")
	for _, doctor := range doctors {
		report, err := booking.Report(db.DB, doctor.ID, booking.ReportDailySummary, today)
		if err != nil {
			log.Printf("Failed to build summary for doctor %d: %v", doctor.ID, err)
			continue
		}

		body := "<p>" + strings.ReplaceAll(report, "\n", "<br>") + "</p>"
		if err := notify.SendEmail(doctor.Email, "Daily Appointment Summary", body); err != nil {
			log.Printf("Failed to send summary to %s: %v", doctor.Email, err)
			continue
		}
		log.Printf("Sent daily summary to %s", doctor.Email)
	}
}

// sendAppointmentReminders emails patients whose appointment starts within
// the next hour.
func sendAppointmentReminders() {
	now := time.Now()
	today := now.Format("2006-01-02")

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("Doctor").
		Where("date = ? AND status = ?", today, models.StatusScheduled).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		start, err := booking.SlotTime(appointment.Date, appointment.TimeSlot, now.Location())
		if err != nil {
			continue
		}

		lead := start.Sub(now)
		if lead < 30*time.Minute || lead > 90*time.Minute {
			continue
		}

		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}

func sendReminderEmail(appointment *models.Appointment) error {
	subject := fmt.Sprintf("Reminder: Upcoming Appointment with %s", appointment.Doctor.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Appointment Booking System</p>
	`, appointment.Patient.Name, appointment.Doctor.Name, appointment.Date, appointment.TimeSlot)

	return notify.SendEmail(appointment.Patient.Email, subject, body)
}
