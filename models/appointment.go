package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a booked 30-minute slot. Date is "YYYY-MM-DD" and TimeSlot is
// "HH:MM"; a partial unique index over (doctor_id, date, time_slot) for
// non-cancelled rows guards against double booking (see db.Migrate).
type Appointment struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	PatientID uint              `json:"patient_id"`
	Patient   User              `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DoctorID  uint              `json:"doctor_id"`
	Doctor    Doctor            `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Date      string            `json:"date" gorm:"index"`
	TimeSlot  string            `json:"time_slot"`
	Status    AppointmentStatus `json:"status"`
	Symptoms  string            `json:"symptoms"`
	Notes     string            `json:"notes"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}

// UpdateStatus applies a lifecycle transition. Appointments are never deleted;
// scheduled rows move to completed or cancelled and then stay put.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusScheduled:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from scheduled to %s", newStatus)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	}

	a.Status = newStatus
	return tx.Save(a).Error
}
