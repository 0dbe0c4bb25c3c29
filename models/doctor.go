package models

import (
	"time"
)

type Doctor struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"index"`
	Specialization string    `json:"specialization"`
	Email          string    `json:"email" gorm:"unique"`
	Phone          string    `json:"phone" gorm:"default:''"`
	UserID         *uint     `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:DoctorID"`
}
