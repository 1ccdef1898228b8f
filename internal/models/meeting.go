package models

import (
	"time"

	"github.com/google/uuid"
)

type Meeting struct {
	BaseModel
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	Project     *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	ScheduledAt time.Time  `gorm:"not null;index" json:"scheduled_at"`
	// Duration in minutes.
	Duration int `gorm:"default:30" json:"duration"`
}
