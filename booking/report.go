package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/docpoint/appointment-server/models"
	"gorm.io/gorm"
)

const (
	ReportDailySummary    = "daily_summary"
	ReportYesterdayVisits = "yesterday_visits"
	ReportTodayTomorrow   = "today_tomorrow_appointments"
	ReportSymptomAnalysis = "symptom_analysis"
)

var reportKinds = []string{
	ReportDailySummary,
	ReportYesterdayVisits,
	ReportTodayTomorrow,
	ReportSymptomAnalysis,
}

// ErrUnknownReport is wrapped with the list of recognized kinds.
var ErrUnknownReport = errors.New("invalid report type")

// Report produces a text summary for a doctor. All kinds are pure reads; the
// filter argument is the target date for daily_summary and the symptom keyword
// for symptom_analysis.
func Report(g *gorm.DB, doctorID uint, kind, filter string) (string, error) {
	var doctor models.Doctor
	if err := g.First(&doctor, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrDoctorNotFound
		}
		return "", err
	}

	today := time.Now().Format(dateLayout)
	yesterday := time.Now().AddDate(0, 0, -1).Format(dateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(dateLayout)

	switch kind {
	case ReportDailySummary:
		targetDate := filter
		if targetDate == "" {
			targetDate = today
		}

		total := countAppointments(g, doctorID, "date = ?", targetDate)
		completed := countAppointments(g, doctorID, "date = ? AND status = ?", targetDate, models.StatusCompleted)
		scheduled := countAppointments(g, doctorID, "date = ? AND status = ?", targetDate, models.StatusScheduled)

		return fmt.Sprintf("Daily Summary for %s on %s:\n"+
			"Total appointments: %d\n"+
			"Completed: %d\n"+
			"Scheduled: %d", doctor.Name, targetDate, total, completed, scheduled), nil

	case ReportYesterdayVisits:
		visits := countAppointments(g, doctorID, "date = ? AND status = ?", yesterday, models.StatusCompleted)
		return fmt.Sprintf("Yesterday (%s), %s had %d completed visits.", yesterday, doctor.Name, visits), nil

	case ReportTodayTomorrow:
		todayCount := countAppointments(g, doctorID, "date = ?", today)
		tomorrowCount := countAppointments(g, doctorID, "date = ?", tomorrow)

		return fmt.Sprintf("Appointments for %s:\n"+
			"Today (%s): %d appointments\n"+
			"Tomorrow (%s): %d appointments", doctor.Name, today, todayCount, tomorrow, tomorrowCount), nil

	case ReportSymptomAnalysis:
		keyword := filter
		if keyword == "" {
			keyword = "fever"
		}

		var cases int64
		g.Model(&models.Appointment{}).
			Where("doctor_id = ?", doctorID).
			Where("LOWER(symptoms) LIKE ?", "%"+strings.ToLower(keyword)+"%").
			Count(&cases)

		return fmt.Sprintf("Patients with '%s' symptoms for %s: %d cases", keyword, doctor.Name, cases), nil
	}

	return "", fmt.Errorf("%w %q. Available types: %s", ErrUnknownReport, kind, strings.Join(reportKinds, ", "))
}

func countAppointments(g *gorm.DB, doctorID uint, query string, args ...interface{}) int64 {
	var count int64
	g.Model(&models.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Where(query, args...).
		Count(&count)
	return count
}
