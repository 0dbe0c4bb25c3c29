package booking_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/docpoint/appointment-server/booking"
	"github.com/docpoint/appointment-server/models"
)

func seedAppointment(t *testing.T, g *gorm.DB, doctorID, patientID uint, date, slot string, status models.AppointmentStatus, symptoms string) {
	t.Helper()

	appointment := models.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		TimeSlot:  slot,
		Status:    status,
		Symptoms:  symptoms,
	}
	require.NoError(t, g.Create(&appointment).Error)
}

func TestReportDailySummary(t *testing.T) {
	g := testDB(t)
	doctor := seedDoctor(t, g, "Dr. Lee")
	patient := seedPatient(t, g, "p@x.com")

	seedAppointment(t, g, doctor.ID, patient.ID, "2024-06-01", "09:00", models.StatusScheduled, "")

	report, err := booking.Report(g, doctor.ID, booking.ReportDailySummary, "2024-06-01")
	require.NoError(t, err)
	assert.Contains(t, report, "Total appointments: 1")
	assert.Contains(t, report, "Completed: 0")
	assert.Contains(t, report, "Scheduled: 1")
	assert.Contains(t, report, "2024-06-01")
}

func TestReportYesterdayVisits(t *testing.T) {
	g := testDB(t)
	doctor := seedDoctor(t, g, "Dr. Lee")
	patient := seedPatient(t, g, "p@x.com")

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	seedAppointment(t, g, doctor.ID, patient.ID, yesterday, "09:00", models.StatusCompleted, "")
	seedAppointment(t, g, doctor.ID, patient.ID, yesterday, "09:30", models.StatusScheduled, "")

	report, err := booking.Report(g, doctor.ID, booking.ReportYesterdayVisits, "")
	require.NoError(t, err)
	assert.Contains(t, report, "1 completed visits")
}

func TestReportTodayTomorrow(t *testing.T) {
	g := testDB(t)
	doctor := seedDoctor(t, g, "Dr. Lee")
	patient := seedPatient(t, g, "p@x.com")

	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	seedAppointment(t, g, doctor.ID, patient.ID, today, "09:00", models.StatusScheduled, "")
	seedAppointment(t, g, doctor.ID, patient.ID, tomorrow, "09:00", models.StatusScheduled, "")
	seedAppointment(t, g, doctor.ID, patient.ID, tomorrow, "09:30", models.StatusScheduled, "")

	report, err := booking.Report(g, doctor.ID, booking.ReportTodayTomorrow, "")
	require.NoError(t, err)
	assert.Contains(t, report, fmt.Sprintf("Today (%s): 1 appointments", today))
	assert.Contains(t, report, fmt.Sprintf("Tomorrow (%s): 2 appointments", tomorrow))
}

func TestReportSymptomAnalysis(t *testing.T) {
	g := testDB(t)
	doctor := seedDoctor(t, g, "Dr. Lee")
	patient := seedPatient(t, g, "p@x.com")

	seedAppointment(t, g, doctor.ID, patient.ID, "2024-06-01", "09:00", models.StatusScheduled, "high Fever and chills")
	seedAppointment(t, g, doctor.ID, patient.ID, "2024-06-01", "09:30", models.StatusScheduled, "sprained ankle")

	report, err := booking.Report(g, doctor.ID, booking.ReportSymptomAnalysis, "fever")
	require.NoError(t, err)
	assert.Contains(t, report, "'fever'")
	assert.Contains(t, report, "1 cases")

	// The keyword defaults to fever when no filter is given.
	report, err = booking.Report(g, doctor.ID, booking.ReportSymptomAnalysis, "")
	require.NoError(t, err)
	assert.Contains(t, report, "1 cases")
}

func TestReportUnknownKind(t *testing.T) {
	g := testDB(t)
	doctor := seedDoctor(t, g, "Dr. Lee")

	_, err := booking.Report(g, doctor.ID, "bogus_type", "")
	require.ErrorIs(t, err, booking.ErrUnknownReport)
	assert.Contains(t, err.Error(), booking.ReportDailySummary)
	assert.Contains(t, err.Error(), booking.ReportYesterdayVisits)
	assert.Contains(t, err.Error(), booking.ReportTodayTomorrow)
	assert.Contains(t, err.Error(), booking.ReportSymptomAnalysis)
}

func TestReportDoctorNotFound(t *testing.T) {
	g := testDB(t)

	_, err := booking.Report(g, 42, booking.ReportDailySummary, "")
	assert.ErrorIs(t, err, booking.ErrDoctorNotFound)
}
