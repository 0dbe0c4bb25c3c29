package db

import (
	"log"

	"github.com/docpoint/appointment-server/models"
	"gorm.io/gorm"
)

// Migrate runs the schema migrations against the global connection.
func Migrate() {
	if err := RunMigrations(DB); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	log.Println("Migrations applied")
}

// RunMigrations creates the tables and the slot-uniqueness index. Exported so
// tests can migrate their own throwaway databases.
func RunMigrations(g *gorm.DB) error {
	err := g.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Appointment{},
		&models.ChatSession{},
	)
	if err != nil {
		return err
	}

	// At most one non-cancelled appointment per (doctor, date, slot). The
	// partial index makes the check-and-insert in booking.Book race-free and
	// lets a cancelled appointment free its slot. Valid on Postgres and SQLite.
	return g.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_open_slot
		ON appointments (doctor_id, date, time_slot)
		WHERE status <> 'cancelled'`).Error
}
