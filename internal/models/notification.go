package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string            `gorm:"type:varchar(50);not null;index" json:"type"`
	Title     string            `gorm:"not null" json:"title"`
	Message   string            `gorm:"type:text;not null" json:"message"`
	ActionURL string            `json:"action_url"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`

	// ScheduledFor nil means deliverable immediately.
	ScheduledFor *time.Time `gorm:"index" json:"scheduled_for"`
	// SentAt is set exactly once by the dispatcher; nil means pending.
	SentAt *time.Time `json:"sent_at"`

	Read   bool       `gorm:"column:read;default:false;index" json:"read"`
	ReadAt *time.Time `json:"read_at"`
}

// IsDue reports whether the notification is eligible for delivery at the
// given instant: not yet sent, and either unscheduled or past its schedule.
func (n *Notification) IsDue(now time.Time) bool {
	if n.SentAt != nil {
		return false
	}
	if n.ScheduledFor == nil {
		return true
	}
	return !n.ScheduledFor.After(now)
}
