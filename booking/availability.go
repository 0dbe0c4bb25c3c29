package booking

import (
	"errors"
	"log"
	"strconv"

	"github.com/docpoint/appointment-server/models"
	"gorm.io/gorm"
)

// BusyFunc is an advisory lookup against an external calendar. It returns the
// slots already taken for the doctor's calendar on the given date. Any failure
// degrades to "no conflicts" — the external calendar can only widen the busy
// set, never block the calculation.
type BusyFunc func(calendarID, date string) ([]string, error)

// FindDoctor resolves a doctor by numeric id or by name. Name matching tries
// the exact string, a case-insensitive match, and the canonical "Dr. X" form.
func FindDoctor(g *gorm.DB, key string) (*models.Doctor, error) {
	var doctor models.Doctor

	if isNumeric(key) {
		id, _ := strconv.ParseUint(key, 10, 64)
		if err := g.First(&doctor, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDoctorNotFound
			}
			return nil, err
		}
		return &doctor, nil
	}

	for _, clause := range []struct {
		query string
		arg   string
	}{
		{"name = ?", key},
		{"LOWER(name) = LOWER(?)", key},
		{"name = ?", NormalizeDoctorName(key)},
	} {
		err := g.Where(clause.query, clause.arg).First(&doctor).Error
		if err == nil {
			return &doctor, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, ErrDoctorNotFound
}

// Availability returns the free slots for a doctor on a date, in ascending
// order. A slot is free when no non-cancelled local appointment holds it and
// the external calendar does not report it busy.
func Availability(g *gorm.DB, doctorKey, date string, busy BusyFunc) ([]string, error) {
	if !ValidDate(date) {
		return nil, ErrBadDate
	}

	doctor, err := FindDoctor(g, doctorKey)
	if err != nil {
		return nil, err
	}

	var booked []string
	err = g.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status <> ?", doctor.ID, date, models.StatusCancelled).
		Pluck("time_slot", &booked).Error
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(booked))
	for _, slot := range booked {
		taken[slot] = true
	}

	if busy != nil {
		external, err := busy(doctor.Email, date)
		if err != nil {
			log.Printf("External calendar lookup failed for %s: %v", doctor.Email, err)
		}
		for _, slot := range external {
			taken[slot] = true
		}
	}

	var free []string
	for _, slot := range SlotGrid() {
		if !taken[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}
