package models

import (
	"time"
)

type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"unique"`
	Name      string    `json:"name"`
	Password  string    `json:"password,omitempty"`
	Role      UserRole  `json:"role"`
	Phone     string    `json:"phone" gorm:"default:''"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DoctorProfile         *Doctor       `json:"doctor_profile,omitempty" gorm:"foreignKey:UserID"`
	AppointmentsAsPatient []Appointment `json:"appointments_as_patient,omitempty" gorm:"foreignKey:PatientID"`
}
