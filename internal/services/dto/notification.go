package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"projecthub_backend/internal/models"
)

// CreateTypedNotificationRequest is the body of POST /notifications/types.
// UserID defaults to the session user when omitted. Data is decoded per
// notification family by the service.
type CreateTypedNotificationRequest struct {
	UserID string          `json:"user_id" validate:"omitempty,uuid"`
	Type   string          `json:"type" validate:"required"`
	Data   json.RawMessage `json:"data"`
}

// TaskNotificationData describes the task a task-family notification is about.
type TaskNotificationData struct {
	TaskID    uuid.UUID  `json:"task_id" validate:"required"`
	Title     string     `json:"title" validate:"required"`
	ProjectID uuid.UUID  `json:"project_id"`
	DueDate   *time.Time `json:"due_date"`
}

// ProjectNotificationData describes the project a project-family
// notification is about.
type ProjectNotificationData struct {
	ProjectID uuid.UUID  `json:"project_id" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Progress  int        `json:"progress"`
	DueDate   *time.Time `json:"due_date"`
}

// MeetingNotificationData describes the meeting a meeting-family
// notification is about.
type MeetingNotificationData struct {
	MeetingID   uuid.UUID `json:"meeting_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Duration    int       `json:"duration"`
}

// AINotificationData is the free-form context for AI-family notifications.
type AINotificationData map[string]interface{}

// ReportNotificationData is the payload stored with report notifications.
type ReportNotificationData map[string]interface{}

// CreateScheduleRequest is the body of POST /notifications/schedules.
type CreateScheduleRequest struct {
	ScheduleType string `json:"schedule_type" validate:"required"`
	TimeSlot     string `json:"time_slot" validate:"required,timeslot"`
	DaysOfWeek   []int  `json:"days_of_week" validate:"omitempty,dive,min=0,max=6"`
	AIEnabled    bool   `json:"ai_intelligence_enabled"`
}

// NotificationResponse is the API shape of a notification.
type NotificationResponse struct {
	ID           uuid.UUID         `json:"id"`
	Type         string            `json:"type"`
	Title        string            `json:"title"`
	Message      string            `json:"message"`
	ActionURL    string            `json:"action_url,omitempty"`
	Metadata     datatypes.JSONMap `json:"metadata,omitempty"`
	ScheduledFor *time.Time        `json:"scheduled_for,omitempty"`
	SentAt       *time.Time        `json:"sent_at,omitempty"`
	Read         bool              `json:"read"`
	ReadAt       *time.Time        `json:"read_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NotificationListResponse wraps a page of notifications.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
}

// UnreadCountResponse is the body of GET /notifications/unread-count.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// ScheduleResponse is the API shape of a recurring schedule.
type ScheduleResponse struct {
	ID           uuid.UUID `json:"id"`
	ScheduleType string    `json:"schedule_type"`
	TimeSlot     string    `json:"time_slot"`
	DaysOfWeek   []int     `json:"days_of_week"`
	IsActive     bool      `json:"is_active"`
	AIEnabled    bool      `json:"ai_intelligence_enabled"`
}

func ToNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		Type:         n.Type,
		Title:        n.Title,
		Message:      n.Message,
		ActionURL:    n.ActionURL,
		Metadata:     n.Metadata,
		ScheduledFor: n.ScheduledFor,
		SentAt:       n.SentAt,
		Read:         n.Read,
		ReadAt:       n.ReadAt,
		CreatedAt:    n.CreatedAt,
	}
}

func ToNotificationListResponse(items []models.Notification) *NotificationListResponse {
	out := make([]NotificationResponse, 0, len(items))
	for i := range items {
		out = append(out, ToNotificationResponse(&items[i]))
	}
	return &NotificationListResponse{Notifications: out, Total: len(out)}
}

func ToScheduleResponse(s *models.NotificationSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:           s.ID,
		ScheduleType: s.ScheduleType,
		TimeSlot:     s.TimeSlot,
		DaysOfWeek:   []int(s.DaysOfWeek),
		IsActive:     s.IsActive,
		AIEnabled:    s.AIEnabled,
	}
}
