package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	BaseModel
	OwnerID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	Progress    int           `gorm:"default:0" json:"progress"`
	DueDate     *time.Time    `json:"due_date"`
}
