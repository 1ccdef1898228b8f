package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AIInsight struct {
	BaseModel
	UserID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	ProjectID  *uuid.UUID        `gorm:"type:uuid;index" json:"project_id"`
	Type       string            `gorm:"type:varchar(50);not null" json:"type"`
	Content    string            `gorm:"type:text;not null" json:"content"`
	Confidence float64           `gorm:"default:0" json:"confidence"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
}
