package models

import (
	"time"
)

// ChatSession holds the conversation context for one user as an opaque JSON
// blob. One row per user; saves overwrite the blob wholesale.
type ChatSession struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex"`
	SessionData string    `json:"session_data"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
