package notify

import (
	"fmt"

	"github.com/docpoint/appointment-server/models"
)

// Outcome records the result of one best-effort notification attempt. Outcomes
// travel with the operation's response and never affect its success: a booking
// stands even when every notification fails.
type Outcome struct {
	Channel string `json:"channel"`
	OK      bool   `json:"ok"`
	Detail  string `json:"detail"`
}

// EmailOutcome attempts one email and reports how it went.
func EmailOutcome(to, subject, body string) Outcome {
	if err := SendEmail(to, subject, body); err != nil {
		return Outcome{Channel: "email", OK: false, Detail: err.Error()}
	}
	return Outcome{Channel: "email", OK: true, Detail: "confirmation email sent to " + to}
}

// SMSOutcome attempts one SMS and reports how it went. An empty phone number
// is reported, not guessed at.
func SMSOutcome(phone, message string) Outcome {
	if phone == "" {
		return Outcome{Channel: "sms", OK: false, Detail: "no phone number on file"}
	}
	sid, err := SendSMS(phone, message)
	if err != nil {
		return Outcome{Channel: "sms", OK: false, Detail: err.Error()}
	}
	return Outcome{Channel: "sms", OK: true, Detail: "SMS sent, SID " + sid}
}

// BookingOutcomes sends the two independent booking side effects (email
// confirmation, SMS notification) and returns their outcomes.
func BookingOutcomes(patient models.User, doctor models.Doctor, appointment models.Appointment) []Outcome {
	subject := fmt.Sprintf("Appointment Confirmation with %s", doctor.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been successfully booked.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Please arrive 15 minutes early for your appointment.</p>
		<p>Best regards,</p>
		<p>Appointment Booking System</p>
	`, patient.Name, doctor.Name, appointment.Date, appointment.TimeSlot)

	sms := fmt.Sprintf("Your appointment with %s on %s at %s has been booked.",
		doctor.Name, appointment.Date, appointment.TimeSlot)

	return []Outcome{
		EmailOutcome(patient.Email, subject, body),
		SMSOutcome(patient.Phone, sms),
	}
}
