package chat

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/docpoint/appointment-server/booking"
)

type IntentKind string

const (
	IntentAvailability IntentKind = "availability"
	IntentBook         IntentKind = "book"
	IntentReport       IntentKind = "report"
	IntentClarify      IntentKind = "clarify"
)

// Intent is the structured result of parsing one chat message. Confidence is a
// coarse score: 0.9 when the intent keyword and every required slot matched,
// 0.5 when the keyword matched but slots are missing, 0 for clarify.
type Intent struct {
	Kind       IntentKind `json:"kind"`
	DoctorName string     `json:"doctor_name,omitempty"`
	Date       string     `json:"date,omitempty"`
	TimeSlot   string     `json:"time_slot,omitempty"`
	Symptoms   string     `json:"symptoms,omitempty"`
	ReportType string     `json:"report_type,omitempty"`
	DateFilter string     `json:"date_filter,omitempty"`
	Confidence float64    `json:"confidence"`
}

var (
	doctorRe   = regexp.MustCompile(`(?i)dr\.?\s+(\w+)`)
	isoDateRe  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	meridiemRe = regexp.MustCompile(`(?i)(\d{1,2}):?(\d{2})?\s*(am|pm)`)
	clockRe    = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)

	availabilityWords = []string{"availability", "available", "check", "free"}
	reportWords       = []string{"report", "patients", "appointments", "summary"}
	symptomWords      = []string{"fever", "headache", "pain", "cough", "cold"}
)

// Parse maps free text to an Intent using fixed keyword and regex heuristics.
// It never hits the database or the network; now anchors the relative dates
// "today" and "tomorrow".
func Parse(message string, now time.Time) Intent {
	lower := strings.ToLower(message)

	doctor := extractDoctor(message)
	date := extractDate(lower, now)
	slot := extractTime(lower)

	switch {
	case strings.Contains(lower, "book"):
		intent := Intent{
			Kind:       IntentBook,
			DoctorName: doctor,
			Date:       date,
			TimeSlot:   slot,
			Symptoms:   extractSymptoms(lower),
			Confidence: 0.5,
		}
		if doctor != "" && date != "" && slot != "" {
			intent.Confidence = 0.9
		}
		return intent

	case containsAny(lower, availabilityWords):
		intent := Intent{
			Kind:       IntentAvailability,
			DoctorName: doctor,
			Date:       date,
			Confidence: 0.5,
		}
		if doctor != "" && date != "" {
			intent.Confidence = 0.9
		}
		return intent

	case containsAny(lower, reportWords):
		return Intent{
			Kind:       IntentReport,
			ReportType: extractReportType(lower),
			DateFilter: extractDateFilter(lower, now),
			Confidence: 0.9,
		}
	}

	return Intent{Kind: IntentClarify}
}

// Complete reports whether the intent carries everything its operation needs.
func (i Intent) Complete() bool {
	switch i.Kind {
	case IntentBook:
		return i.DoctorName != "" && i.Date != "" && i.TimeSlot != ""
	case IntentAvailability:
		return i.DoctorName != "" && i.Date != ""
	case IntentReport:
		return i.ReportType != ""
	}
	return false
}

func extractDoctor(message string) string {
	m := doctorRe.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	return booking.NormalizeDoctorName(m[1])
}

func extractDate(lower string, now time.Time) string {
	switch {
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	case strings.Contains(lower, "today"):
		return now.Format("2006-01-02")
	}
	return isoDateRe.FindString(lower)
}

func extractTime(lower string) string {
	if m := meridiemRe.FindStringSubmatch(lower); m != nil {
		hour := atoi(m[1])
		minute := m[2]
		if minute == "" {
			minute = "00"
		}
		if m[3] == "pm" && hour != 12 {
			hour += 12
		} else if m[3] == "am" && hour == 12 {
			hour = 0
		}
		return fmt.Sprintf("%02d:%s", hour, minute)
	}

	return clockRe.FindString(lower)
}

func extractSymptoms(lower string) string {
	for _, keyword := range symptomWords {
		if strings.Contains(lower, keyword) {
			return keyword
		}
	}
	return ""
}

func extractReportType(lower string) string {
	switch {
	case strings.Contains(lower, "yesterday"):
		return booking.ReportYesterdayVisits
	case strings.Contains(lower, "today"), strings.Contains(lower, "tomorrow"):
		return booking.ReportTodayTomorrow
	case containsAny(lower, symptomWords):
		return booking.ReportSymptomAnalysis
	}
	return booking.ReportDailySummary
}

func extractDateFilter(lower string, now time.Time) string {
	switch {
	case strings.Contains(lower, "yesterday"):
		return now.AddDate(0, 0, -1).Format("2006-01-02")
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	case strings.Contains(lower, "today"):
		return now.Format("2006-01-02")
	}

	if containsAny(lower, symptomWords) {
		for _, keyword := range symptomWords {
			if strings.Contains(lower, keyword) {
				return keyword
			}
		}
	}
	return isoDateRe.FindString(lower)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
