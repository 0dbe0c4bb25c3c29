package booking

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrSlotConflict    = errors.New("time slot is already booked")
	ErrBadDate         = errors.New("date must be in YYYY-MM-DD format")
	ErrSlotOffGrid     = errors.New("time slot is outside the bookable grid")
)
