package models

import (
	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Name  string `gorm:"not null" json:"name"`

	// Per-channel/per-kind switches plus digest opt-ins, e.g.
	// {"email_enabled": true, "email_task_due": false, "morning_notifications": true}
	NotificationPreferences datatypes.JSONMap `gorm:"type:jsonb" json:"notification_preferences"`
}

// PrefEnabled reports whether a preference key is enabled. Keys default to
// enabled unless explicitly set to false.
func (u *User) PrefEnabled(key string) bool {
	if u.NotificationPreferences == nil {
		return true
	}
	v, ok := u.NotificationPreferences[key]
	if !ok {
		return true
	}
	b, ok := v.(bool)
	if !ok {
		return true
	}
	return b
}

// EmailEnabledFor combines the channel master switch with the per-kind switch.
func (u *User) EmailEnabledFor(kind string) bool {
	return u.PrefEnabled("email_enabled") && u.PrefEnabled("email_"+kind)
}
