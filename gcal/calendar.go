// Package gcal reads a doctor's Google Calendar to widen the busy set used by
// availability. The lookup is advisory: missing credentials or a failed call
// degrade to an empty result and never block the calculation.
package gcal

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// authorizedUser mirrors the "authorized user" JSON credential blob stored in
// GOOGLE_CALENDAR_CREDENTIALS.
type authorizedUser struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

// BusySlots lists the HH:MM start slots of calendar events between 09:00 and
// 17:00 UTC on the given date. Returns nil when the integration is not
// configured.
func BusySlots(calendarID, date string) ([]string, error) {
	raw := os.Getenv("GOOGLE_CALENDAR_CREDENTIALS")
	if raw == "" {
		return nil, nil
	}

	var creds authorizedUser
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, err
	}

	cfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
	}
	token := &oauth2.Token{RefreshToken: creds.RefreshToken}

	ctx := context.Background()
	service, err := calendar.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, token)))
	if err != nil {
		return nil, err
	}

	events, err := service.Events.List(calendarID).
		TimeMin(date + "T09:00:00Z").
		TimeMax(date + "T17:00:00Z").
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, err
	}

	var busy []string
	for _, event := range events.Items {
		if event.Start == nil || event.Start.DateTime == "" {
			continue // all-day events carry no slot
		}
		start, err := time.Parse(time.RFC3339, event.Start.DateTime)
		if err != nil {
			continue
		}
		busy = append(busy, start.Format("15:04"))
	}
	return busy, nil
}
