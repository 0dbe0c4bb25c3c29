package booking

import (
	"errors"

	"github.com/docpoint/appointment-server/models"
	"gorm.io/gorm"
)

// Book reserves a slot for a patient with a doctor. The conflict check and the
// insert run in one transaction, and the partial unique index on
// (doctor_id, date, time_slot) is the backstop: when two bookings race, one
// insert hits a duplicate-key error and surfaces as ErrSlotConflict instead of
// a double booking. A cancelled appointment does not block its slot.
func Book(g *gorm.DB, patientID uint, doctorKey, date, slot, symptoms string) (*models.Appointment, error) {
	if !ValidDate(date) {
		return nil, ErrBadDate
	}
	if !ValidSlot(slot) {
		return nil, ErrSlotOffGrid
	}

	var patient models.User
	if err := g.First(&patient, patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	doctor, err := FindDoctor(g, doctorKey)
	if err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		PatientID: patientID,
		DoctorID:  doctor.ID,
		Date:      date,
		TimeSlot:  slot,
		Status:    models.StatusScheduled,
		Symptoms:  symptoms,
	}

	err = g.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND date = ? AND time_slot = ? AND status <> ?",
				doctor.ID, date, slot, models.StatusCancelled).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotConflict
		}

		if err := tx.Create(&appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	appointment.Patient = patient
	appointment.Doctor = *doctor
	return &appointment, nil
}

// Cancel moves an appointment to cancelled, freeing its slot for rebooking.
func Cancel(g *gorm.DB, appointmentID uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := g.First(&appointment, appointmentID).Error; err != nil {
		return nil, err
	}

	if err := appointment.UpdateStatus(g, models.StatusCancelled); err != nil {
		return nil, err
	}
	return &appointment, nil
}
