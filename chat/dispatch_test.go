package chat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docpoint/appointment-server/booking"
	"github.com/docpoint/appointment-server/chat"
)

var now = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func TestParseAvailability(t *testing.T) {
	intent := chat.Parse("Check availability for Dr. Lee on 2024-06-01", now)

	assert.Equal(t, chat.IntentAvailability, intent.Kind)
	assert.Equal(t, "Dr. Lee", intent.DoctorName)
	assert.Equal(t, "2024-06-01", intent.Date)
	assert.Equal(t, 0.9, intent.Confidence)
	assert.True(t, intent.Complete())
}

func TestParseAvailabilityRelativeDates(t *testing.T) {
	intent := chat.Parse("is dr smith free tomorrow?", now)

	assert.Equal(t, chat.IntentAvailability, intent.Kind)
	assert.Equal(t, "Dr. Smith", intent.DoctorName)
	assert.Equal(t, "2024-06-02", intent.Date)

	intent = chat.Parse("any availability with dr. smith today", now)
	assert.Equal(t, "2024-06-01", intent.Date)
}

func TestParseBooking(t *testing.T) {
	intent := chat.Parse("I want to book with Dr. Smith tomorrow at 2 pm for headache", now)

	assert.Equal(t, chat.IntentBook, intent.Kind)
	assert.Equal(t, "Dr. Smith", intent.DoctorName)
	assert.Equal(t, "2024-06-02", intent.Date)
	assert.Equal(t, "14:00", intent.TimeSlot)
	assert.Equal(t, "headache", intent.Symptoms)
	assert.Equal(t, 0.9, intent.Confidence)
	assert.True(t, intent.Complete())
}

func TestParseBooking24HourClock(t *testing.T) {
	intent := chat.Parse("book dr lee on 2024-06-03 at 09:30", now)

	assert.Equal(t, chat.IntentBook, intent.Kind)
	assert.Equal(t, "Dr. Lee", intent.DoctorName)
	assert.Equal(t, "2024-06-03", intent.Date)
	assert.Equal(t, "09:30", intent.TimeSlot)
}

func TestParseBookingMeridiemEdges(t *testing.T) {
	intent := chat.Parse("book dr lee today at 12 pm", now)
	assert.Equal(t, "12:00", intent.TimeSlot)

	intent = chat.Parse("book dr lee today at 12:30 am", now)
	assert.Equal(t, "00:30", intent.TimeSlot)
}

func TestParseBookingIncomplete(t *testing.T) {
	intent := chat.Parse("I'd like to book an appointment", now)

	assert.Equal(t, chat.IntentBook, intent.Kind)
	assert.False(t, intent.Complete())
	assert.Equal(t, 0.5, intent.Confidence)
}

func TestParseReport(t *testing.T) {
	intent := chat.Parse("how many patients visited yesterday?", now)
	assert.Equal(t, chat.IntentReport, intent.Kind)
	assert.Equal(t, booking.ReportYesterdayVisits, intent.ReportType)
	assert.Equal(t, "2024-05-31", intent.DateFilter)

	intent = chat.Parse("how many appointments today and tomorrow?", now)
	assert.Equal(t, booking.ReportTodayTomorrow, intent.ReportType)

	intent = chat.Parse("how many patients with fever?", now)
	assert.Equal(t, booking.ReportSymptomAnalysis, intent.ReportType)
	assert.Equal(t, "fever", intent.DateFilter)

	intent = chat.Parse("send me a summary", now)
	assert.Equal(t, booking.ReportDailySummary, intent.ReportType)
}

func TestParseClarifyFallback(t *testing.T) {
	intent := chat.Parse("hello there", now)

	assert.Equal(t, chat.IntentClarify, intent.Kind)
	assert.Equal(t, 0.0, intent.Confidence)
	assert.False(t, intent.Complete())
}
