package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationSchedule struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ScheduleType string    `gorm:"type:varchar(50);not null" json:"schedule_type"`
	// TimeSlot is a 24h wall-clock time, "HH:MM".
	TimeSlot string `gorm:"type:varchar(5);not null;index" json:"time_slot"`
	// DaysOfWeek holds weekday numbers 0 (Sunday) through 6. Empty means
	// the schedule fires every day.
	DaysOfWeek datatypes.JSONSlice[int] `gorm:"type:jsonb" json:"days_of_week"`
	IsActive   bool                     `gorm:"default:true" json:"is_active"`
	AIEnabled  bool                     `gorm:"column:ai_intelligence_enabled;default:true" json:"ai_intelligence_enabled"`
}

// MatchesDay reports whether the schedule fires on the given weekday.
func (s *NotificationSchedule) MatchesDay(day time.Weekday) bool {
	if len(s.DaysOfWeek) == 0 {
		return true
	}
	for _, d := range s.DaysOfWeek {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}
