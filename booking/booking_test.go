package booking_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/docpoint/appointment-server/booking"
	"github.com/docpoint/appointment-server/db"
	"github.com/docpoint/appointment-server/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	g, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(g))
	return g
}

func seedDoctor(t *testing.T, g *gorm.DB, name string) models.Doctor {
	t.Helper()

	doctor := models.Doctor{
		Name:           name,
		Specialization: "cardiology",
		Email:          strings.ToLower(strings.ReplaceAll(name, " ", "")) + "@x.com",
	}
	require.NoError(t, g.Create(&doctor).Error)
	return doctor
}

func seedPatient(t *testing.T, g *gorm.DB, email string) models.User {
	t.Helper()

	patient := models.User{
		Email:    email,
		Name:     "Test Patient",
		Password: "hash",
		Role:     models.RolePatient,
	}
	require.NoError(t, g.Create(&patient).Error)
	return patient
}

func TestSlotGrid(t *testing.T) {
	grid := booking.SlotGrid()

	assert.Len(t, grid, 16)
	assert.Equal(t, "09:00", grid[0])
	assert.Equal(t, "16:30", grid[len(grid)-1])
	assert.NotContains(t, grid, "17:00")

	for i := 1; i < len(grid); i++ {
		assert.Less(t, grid[i-1], grid[i], "grid must ascend")
	}
}

func TestAvailabilityEmptySchedule(t *testing.T) {
	g := testDB(t)
	seedDoctor(t, g, "Dr. Lee")

	slots, err := booking.Availability(g, "Dr. Lee", "2024-06-01", nil)
	require.NoError(t, err)
	assert.Equal(t, booking.SlotGrid(), slots)
}

func TestAvailabilityDoctorLookup(t *testing.T) {
	g := testDB(t)
	doctor := seedDoctor(t, g, "Dr. Lee")

	for _, key := range []string{"Dr. Lee", "dr. lee", "lee", fmt.Sprint(doctor.ID)} {
		slots, err := booking.Availability(g, key, "2024-06-01", nil)
		require.NoError(t, err, "lookup by %q", key)
		assert.Len(t, slots, 16)
	}

	_, err := booking.Availability(g, "Dr. Nobody", "2024-06-01", nil)
	assert.ErrorIs(t, err, booking.ErrDoctorNotFound)
}

func TestAvailabilityExcludesBookedSlots(t *testing.T) {
	g := testDB(t)
	doctor := seedDoctor(t, g, "Dr. Lee")
	patient := seedPatient(t, g, "p@x.com")

	_, err := booking.Book(g, patient.ID, "Dr. Lee", "2024-06-01", "09:00", "")
	require.NoError(t, err)

	slots, err := booking.Availability(g, "Dr. Lee", "2024-06-01", nil)
	require.NoError(t, err)
	assert.Len(t, slots, 15)
	assert.NotContains(t, slots, "09:00")

	// Another date is unaffected.
	slots, err = booking.Availability(g, fmt.Sprint(doctor.ID), "2024-06-02", nil)
	require.NoError(t, err)
	assert.Len(t, slots, 16)
}

func TestAvailabilityExternalCalendar(t *testing.T) {
	g := testDB(t)
	seedDoctor(t, g, "Dr. Lee")

	busy := func(calendarID, date string) ([]string, error) {
		return []string{"10:00", "10:30"}, nil
	}

	slots, err := booking.Availability(g, "Dr. Lee", "2024-06-01", busy)
	require.NoError(t, err)
	assert.Len(t, slots, 14)
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")
}

func TestAvailabilityExternalFailureIsAdvisory(t *testing.T) {
	g := testDB(t)
	seedDoctor(t, g, "Dr. Lee")

	busy := func(calendarID, date string) ([]string, error) {
		return nil, fmt.Errorf("calendar unreachable")
	}

	slots, err := booking.Availability(g, "Dr. Lee", "2024-06-01", busy)
	require.NoError(t, err)
	assert.Len(t, slots, 16)
}

func TestAvailabilityIdempotent(t *testing.T) {
	g := testDB(t)
	seedDoctor(t, g, "Dr. Lee")

	first, err := booking.Availability(g, "Dr. Lee", "2024-06-01", nil)
	require.NoError(t, err)
	second, err := booking.Availability(g, "Dr. Lee", "2024-06-01", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAvailabilityBadDate(t *testing.T) {
	g := testDB(t)
	seedDoctor(t, g, "Dr. Lee")

	_, err := booking.Availability(g, "Dr. Lee", "June 1st", nil)
	assert.ErrorIs(t, err, booking.ErrBadDate)
}

func TestBookThenConflict(t *testing.T) {
	g := testDB(t)
	seedDoctor(t, g, "Dr. Lee")
	patient := seedPatient(t, g, "p@x.com")

	appointment, err := booking.Book(g, patient.ID, "Dr. Lee", "2024-06-01", "09:00", "headache")
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, appointment.Status)
	assert.Equal(t, "headache", appointment.Symptoms)
	assert.Equal(t, patient.ID, appointment.PatientID)

	_, err = booking.Book(g, patient.ID, "Dr. Lee", "2024-06-01", "09:00", "")
	assert.ErrorIs(t, err, booking.ErrSlotConflict)
}

func TestBookEverySlotOfferedByAvailability(t *testing.T) {
	g := testDB(t)
	seedDoctor(t, g, "Dr. Lee")
	patient := seedPatient(t, g, "p@x.com")

	slots, err := booking.Availability(g, "Dr. Lee", "2024-06-01", nil)
	require.NoError(t, err)

	for _, slot := range slots {
		_, err := booking.Book(g, patient.ID, "Dr. Lee", "2024-06-01", slot, "")
		require.NoError(t, err, "slot %s was offered and must book", slot)
	}

	slots, err = booking.Availability(g, "Dr. Lee", "2024-06-01", nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestBookBoundarySlots(t *testing.T) {
	g := testDB(t)
	seedDoctor(t, g, "Dr. Lee")
	patient := seedPatient(t, g, "p@x.com")

	_, err := booking.Book(g, patient.ID, "Dr. Lee", "2024-06-01", "16:30", "")
	require.NoError(t, err)

	_, err = booking.Book(g, patient.ID, "Dr. Lee", "2024-06-01", "17:00", "")
	assert.ErrorIs(t, err, booking.ErrSlotOffGrid)

	_, err = booking.Book(g, patient.ID, "Dr. Lee", "2024-06-01", "09:15", "")
	assert.ErrorIs(t, err, booking.ErrSlotOffGrid)
}

func TestBookMissingParticipants(t *testing.T) {
	g := testDB(t)
	seedDoctor(t, g, "Dr. Lee")
	patient := seedPatient(t, g, "p@x.com")

	_, err := booking.Book(g, 9999, "Dr. Lee", "2024-06-01", "09:00", "")
	assert.ErrorIs(t, err, booking.ErrPatientNotFound)

	_, err = booking.Book(g, patient.ID, "Dr. Nobody", "2024-06-01", "09:00", "")
	assert.ErrorIs(t, err, booking.ErrDoctorNotFound)
}

func TestCancelledSlotIsRebookable(t *testing.T) {
	g := testDB(t)
	seedDoctor(t, g, "Dr. Lee")
	patient := seedPatient(t, g, "p@x.com")

	appointment, err := booking.Book(g, patient.ID, "Dr. Lee", "2024-06-01", "09:00", "")
	require.NoError(t, err)

	_, err = booking.Cancel(g, appointment.ID)
	require.NoError(t, err)

	slots, err := booking.Availability(g, "Dr. Lee", "2024-06-01", nil)
	require.NoError(t, err)
	assert.Contains(t, slots, "09:00")

	_, err = booking.Book(g, patient.ID, "Dr. Lee", "2024-06-01", "09:00", "")
	require.NoError(t, err)
}

func TestDrLeeScenario(t *testing.T) {
	g := testDB(t)
	seedDoctor(t, g, "Dr. Lee")
	patient := seedPatient(t, g, "p@x.com")

	slots, err := booking.Availability(g, "Dr. Lee", "2024-06-01", nil)
	require.NoError(t, err)
	require.Len(t, slots, 16)

	_, err = booking.Book(g, patient.ID, "Dr. Lee", "2024-06-01", "09:00", "")
	require.NoError(t, err)

	slots, err = booking.Availability(g, "Dr. Lee", "2024-06-01", nil)
	require.NoError(t, err)
	assert.NotContains(t, slots, "09:00")

	_, err = booking.Book(g, patient.ID, "Dr. Lee", "2024-06-01", "09:00", "")
	assert.ErrorIs(t, err, booking.ErrSlotConflict)
}
