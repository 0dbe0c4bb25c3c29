package notify

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// ErrSMTPNotConfigured signals missing SMTP credentials. The feature degrades
// to a "not configured" outcome instead of failing the calling operation.
var ErrSMTPNotConfigured = errors.New("SMTP credentials not configured")

// SendEmail delivers one HTML email through the configured SMTP server.
// Attempted exactly once, no retries.
func SendEmail(to, subject, body string) error {
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	if username == "" || password == "" {
		return ErrSMTPNotConfigured
	}

	server := os.Getenv("SMTP_SERVER")
	if server == "" {
		server = "smtp.gmail.com"
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(server, port, username, password)
	return d.DialAndSend(m)
}
