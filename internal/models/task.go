package models

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	BaseModel
	ProjectID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"project_id"`
	Project     *Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssigneeID  *uuid.UUID   `gorm:"type:uuid;index" json:"assignee_id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);default:'todo'" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	DueDate     *time.Time   `gorm:"index" json:"due_date"`
	CompletedAt *time.Time   `json:"completed_at"`
}
