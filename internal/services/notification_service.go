package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"projecthub_backend/internal/ai"
	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/models"
	"projecthub_backend/internal/notifications"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services/dto"
	"projecthub_backend/pkg/apperrors"
)

type NotificationService interface {
	// Factory methods per notification family.
	CreateTaskNotification(userID uuid.UUID, task *models.Task, kind notifications.Kind) error
	CreateProjectNotification(userID uuid.UUID, project *models.Project, kind notifications.Kind) error
	CreateMeetingNotification(userID uuid.UUID, meeting *models.Meeting, kind notifications.Kind) error
	CreateAINotification(ctx context.Context, userID uuid.UUID, kind notifications.Kind, data map[string]interface{}) error
	CreateReportNotification(userID uuid.UUID, kind notifications.Kind, reportData map[string]interface{}) error
	CreateScheduledReminder(ctx context.Context, schedule *models.NotificationSchedule) error

	// Generic entry point used by the typed-create endpoint.
	CreateFromRequest(ctx context.Context, userID uuid.UUID, req *dto.CreateTypedNotificationRequest) error

	// Read-side operations.
	GetUserNotifications(userID uuid.UUID, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(userID, notificationID uuid.UUID) error
	MarkAllAsRead(userID uuid.UUID) error
	GetUnreadCount(userID uuid.UUID) (int64, error)

	// Recurring schedules.
	CreateSchedule(userID uuid.UUID, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	scheduleRepo     repositories.ScheduleRepository
	aiService        *ai.Service
	now              func() time.Time
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	scheduleRepo repositories.ScheduleRepository,
	aiService *ai.Service,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		scheduleRepo:     scheduleRepo,
		aiService:        aiService,
		now:              time.Now,
	}
}

// NewNotificationServiceWithClock pins the clock, used by tests.
func NewNotificationServiceWithClock(
	notificationRepo repositories.NotificationRepository,
	scheduleRepo repositories.ScheduleRepository,
	aiService *ai.Service,
	now func() time.Time,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		scheduleRepo:     scheduleRepo,
		aiService:        aiService,
		now:              now,
	}
}

// create persists a notification with sent_at left nil. Every notification,
// scheduled or not, is delivered by the dispatch tick; a schedule that is
// already in the past is clamped to now so it goes out on the next tick.
func (s *notificationService) create(userID uuid.UUID, kind notifications.Kind, title, message, actionURL string, metadata map[string]interface{}, scheduledFor *time.Time) error {
	if scheduledFor != nil && !scheduledFor.After(s.now()) {
		at := s.now()
		scheduledFor = &at
	}

	tpl := notifications.Lookup(kind)
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	if _, ok := metadata["priority"]; !ok {
		metadata["priority"] = string(tpl.Priority)
	}
	metadata["category"] = string(tpl.Category)
	metadata["icon"] = tpl.Icon
	metadata["color"] = tpl.Color
	metadata["actionable"] = tpl.Actionable

	n := &models.Notification{
		UserID:       userID,
		Type:         string(kind),
		Title:        title,
		Message:      message,
		ActionURL:    actionURL,
		Metadata:     datatypes.JSONMap(metadata),
		ScheduledFor: scheduledFor,
	}
	if err := s.notificationRepo.Create(n); err != nil {
		return apperrors.PersistenceError(err)
	}
	return nil
}

// suppressDuplicate reports whether the user already has an unread
// notification of this kind for the same entity, so periodic scans do not
// pile up repeats.
func (s *notificationService) suppressDuplicate(userID uuid.UUID, kind notifications.Kind, metaKey string, entityID uuid.UUID) bool {
	exists, err := s.notificationRepo.ExistsRecentForEntity(userID, string(kind), metaKey, entityID.String())
	if err != nil {
		logger.WithError(err).Warn("duplicate check failed, creating anyway", "kind", string(kind))
		return false
	}
	return exists
}

func (s *notificationService) CreateTaskNotification(userID uuid.UUID, task *models.Task, kind notifications.Kind) error {
	tpl := notifications.Lookup(kind)
	title := tpl.Title
	message := tpl.Message
	var scheduledFor *time.Time

	switch kind {
	case notifications.KindTaskDue:
		title = fmt.Sprintf("Task Due Soon: %s", task.Title)
		if task.DueDate != nil {
			message = fmt.Sprintf("Your task %q is due %s", task.Title, formatDueDate(*task.DueDate, s.now()))
			// Remind one hour ahead of the due date.
			at := task.DueDate.Add(-time.Hour)
			scheduledFor = &at
		} else {
			message = fmt.Sprintf("Your task %q is due soon", task.Title)
		}
	case notifications.KindTaskOverdue:
		title = fmt.Sprintf("Overdue Task: %s", task.Title)
		message = fmt.Sprintf("Your task %q is overdue and needs immediate attention", task.Title)
	case notifications.KindTaskCompleted:
		title = fmt.Sprintf("Task Completed: %s", task.Title)
		message = fmt.Sprintf("Great job! You've completed %q", task.Title)
	case notifications.KindTaskAssigned:
		title = fmt.Sprintf("New Task Assigned: %s", task.Title)
		message = fmt.Sprintf("You've been assigned a new task: %q", task.Title)
	}

	if kind == notifications.KindTaskDue || kind == notifications.KindTaskOverdue {
		if s.suppressDuplicate(userID, kind, "task_id", task.ID) {
			return nil
		}
	}

	return s.create(userID, kind, title, message, fmt.Sprintf("/tasks?id=%s", task.ID), map[string]interface{}{
		"task_id":    task.ID.String(),
		"task_title": task.Title,
		"project_id": task.ProjectID.String(),
	}, scheduledFor)
}

func (s *notificationService) CreateProjectNotification(userID uuid.UUID, project *models.Project, kind notifications.Kind) error {
	tpl := notifications.Lookup(kind)
	title := tpl.Title
	message := tpl.Message
	var scheduledFor *time.Time

	switch kind {
	case notifications.KindProjectDeadline:
		title = fmt.Sprintf("Project Deadline: %s", project.Name)
		message = fmt.Sprintf("Your project %q deadline is approaching", project.Name)
		if project.DueDate != nil {
			// Remind three days ahead of the deadline.
			at := project.DueDate.Add(-72 * time.Hour)
			scheduledFor = &at
		}
	case notifications.KindProjectAtRisk:
		title = fmt.Sprintf("Project at Risk: %s", project.Name)
		message = fmt.Sprintf("Your project %q may be at risk of missing its deadline", project.Name)
	case notifications.KindProjectUpdate:
		title = fmt.Sprintf("Project Update: %s", project.Name)
		message = fmt.Sprintf("There's been an update to your project %q", project.Name)
	}

	if kind == notifications.KindProjectDeadline || kind == notifications.KindProjectAtRisk {
		if s.suppressDuplicate(userID, kind, "project_id", project.ID) {
			return nil
		}
	}

	return s.create(userID, kind, title, message, fmt.Sprintf("/projects?id=%s", project.ID), map[string]interface{}{
		"project_id":   project.ID.String(),
		"project_name": project.Name,
		"progress":     project.Progress,
	}, scheduledFor)
}

func (s *notificationService) CreateMeetingNotification(userID uuid.UUID, meeting *models.Meeting, kind notifications.Kind) error {
	tpl := notifications.Lookup(kind)
	title := tpl.Title
	message := tpl.Message
	var scheduledFor *time.Time

	switch kind {
	case notifications.KindMeetingReminder:
		title = fmt.Sprintf("Meeting Reminder: %s", meeting.Title)
		message = fmt.Sprintf("You have a meeting %q scheduled soon", meeting.Title)
		at := meeting.ScheduledAt.Add(-15 * time.Minute)
		scheduledFor = &at
	case notifications.KindMeetingStarting:
		title = fmt.Sprintf("Meeting Starting: %s", meeting.Title)
		message = fmt.Sprintf("Your meeting %q is starting now", meeting.Title)
		at := meeting.ScheduledAt
		scheduledFor = &at
	case notifications.KindMeetingCompleted:
		title = fmt.Sprintf("Meeting Completed: %s", meeting.Title)
		message = fmt.Sprintf("Your meeting %q has ended. Review the summary and action items", meeting.Title)
	}

	if kind == notifications.KindMeetingReminder {
		if s.suppressDuplicate(userID, kind, "meeting_id", meeting.ID) {
			return nil
		}
	}

	return s.create(userID, kind, title, message, fmt.Sprintf("/meetings?id=%s", meeting.ID), map[string]interface{}{
		"meeting_id":    meeting.ID.String(),
		"meeting_title": meeting.Title,
		"duration":      meeting.Duration,
	}, scheduledFor)
}

// CreateAINotification asks the model for personalized copy and falls back
// to the registry template when generation fails.
func (s *notificationService) CreateAINotification(ctx context.Context, userID uuid.UUID, kind notifications.Kind, data map[string]interface{}) error {
	tpl := notifications.Lookup(kind)
	title := tpl.Title
	message := tpl.Message
	priority := string(tpl.Priority)

	content, err := s.aiService.GenerateNotificationContent(ctx, data, string(kind))
	if err != nil {
		logger.WithError(err).Warn("ai content generation failed, using template", "kind", string(kind))
	} else {
		title = content.Title
		message = content.Message
		if content.Priority != "" {
			priority = content.Priority
		}
	}

	metadata := map[string]interface{}{
		"ai_generated": err == nil,
		"priority":     priority,
	}
	if confidence, ok := data["confidence"]; ok {
		metadata["confidence"] = confidence
	} else {
		metadata["confidence"] = 0.8
	}
	for k, v := range data {
		if _, taken := metadata[k]; !taken {
			metadata[k] = v
		}
	}

	return s.create(userID, kind, title, message, "/ai-insights", metadata, nil)
}

func (s *notificationService) CreateReportNotification(userID uuid.UUID, kind notifications.Kind, reportData map[string]interface{}) error {
	tpl := notifications.Lookup(kind)
	return s.create(userID, kind, tpl.Title, tpl.Message, "/reports", map[string]interface{}{
		"report_data":  reportData,
		"generated_at": s.now().UTC().Format(time.RFC3339),
	}, nil)
}

// CreateScheduledReminder expands a recurring schedule into one concrete
// notification. The schedule type names the kind directly; anything
// unrecognized becomes a custom reminder.
func (s *notificationService) CreateScheduledReminder(ctx context.Context, schedule *models.NotificationSchedule) error {
	kind := scheduleKind(schedule.ScheduleType)
	tpl := notifications.Lookup(kind)
	title := tpl.Title
	message := tpl.Message
	if kind == notifications.KindCustomReminder {
		title = "Scheduled Reminder"
		message = "This is your scheduled reminder from AI ProjectHub"
	}

	aiGenerated := false
	if schedule.AIEnabled {
		content, err := s.aiService.GenerateNotificationContent(ctx, map[string]interface{}{
			"schedule_type": schedule.ScheduleType,
			"time_slot":     schedule.TimeSlot,
		}, string(kind))
		if err != nil {
			logger.WithError(err).Warn("ai content generation failed for schedule, using template",
				"schedule_id", schedule.ID.String())
		} else {
			title = content.Title
			message = content.Message
			aiGenerated = true
		}
	}

	return s.create(schedule.UserID, kind, title, message, "", map[string]interface{}{
		"schedule_id":  schedule.ID.String(),
		"ai_generated": aiGenerated,
	}, nil)
}

// scheduleKind maps a schedule's type tag onto a registered kind.
func scheduleKind(scheduleType string) notifications.Kind {
	if k := notifications.Kind(scheduleType); notifications.IsKnown(k) {
		return k
	}
	return notifications.KindCustomReminder
}

func (s *notificationService) CreateFromRequest(ctx context.Context, userID uuid.UUID, req *dto.CreateTypedNotificationRequest) error {
	kind := notifications.Kind(req.Type)
	if !notifications.IsKnown(kind) {
		return apperrors.ErrUnknownNotificationType(req.Type)
	}

	switch kind {
	case notifications.KindTaskDue, notifications.KindTaskOverdue, notifications.KindTaskCompleted, notifications.KindTaskAssigned:
		var data dto.TaskNotificationData
		if err := json.Unmarshal(req.Data, &data); err != nil {
			return apperrors.NewBadRequestError("invalid task notification data")
		}
		return s.CreateTaskNotification(userID, &models.Task{
			BaseModel: models.BaseModel{ID: data.TaskID},
			ProjectID: data.ProjectID,
			Title:     data.Title,
			DueDate:   data.DueDate,
		}, kind)

	case notifications.KindProjectUpdate, notifications.KindProjectDeadline, notifications.KindProjectAtRisk:
		var data dto.ProjectNotificationData
		if err := json.Unmarshal(req.Data, &data); err != nil {
			return apperrors.NewBadRequestError("invalid project notification data")
		}
		return s.CreateProjectNotification(userID, &models.Project{
			BaseModel: models.BaseModel{ID: data.ProjectID},
			Name:      data.Name,
			Progress:  data.Progress,
			DueDate:   data.DueDate,
		}, kind)

	case notifications.KindMeetingReminder, notifications.KindMeetingStarting, notifications.KindMeetingCompleted:
		var data dto.MeetingNotificationData
		if err := json.Unmarshal(req.Data, &data); err != nil {
			return apperrors.NewBadRequestError("invalid meeting notification data")
		}
		return s.CreateMeetingNotification(userID, &models.Meeting{
			BaseModel:   models.BaseModel{ID: data.MeetingID},
			Title:       data.Title,
			ScheduledAt: data.ScheduledAt,
			Duration:    data.Duration,
		}, kind)

	case notifications.KindAIInsight, notifications.KindAIRecommendation, notifications.KindAIAlert, notifications.KindSmartAlert:
		var data dto.AINotificationData
		if len(req.Data) > 0 {
			if err := json.Unmarshal(req.Data, &data); err != nil {
				return apperrors.NewBadRequestError("invalid ai notification data")
			}
		}
		return s.CreateAINotification(ctx, userID, kind, data)

	case notifications.KindWeeklyReport, notifications.KindMonthlyReport, notifications.KindProductivityReport:
		var data dto.ReportNotificationData
		if len(req.Data) > 0 {
			if err := json.Unmarshal(req.Data, &data); err != nil {
				return apperrors.NewBadRequestError("invalid report notification data")
			}
		}
		return s.CreateReportNotification(userID, kind, data)

	default:
		// Remaining kinds carry no structured payload.
		tpl := notifications.Lookup(kind)
		var metadata map[string]interface{}
		if len(req.Data) > 0 {
			if err := json.Unmarshal(req.Data, &metadata); err != nil {
				return apperrors.NewBadRequestError("invalid notification data")
			}
		}
		return s.create(userID, kind, tpl.Title, tpl.Message, "", metadata, nil)
	}
}

func (s *notificationService) GetUserNotifications(userID uuid.UUID, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	items, err := s.notificationRepo.FindUserNotifications(userID, criteria)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	return dto.ToNotificationListResponse(items), nil
}

func (s *notificationService) MarkAsRead(userID, notificationID uuid.UUID) error {
	n, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if err == repositories.ErrNotificationNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.PersistenceError(err)
	}
	if n.UserID != userID {
		return apperrors.New(apperrors.CodeForbidden, "notifications", "notification belongs to another user", http.StatusForbidden)
	}
	if err := s.notificationRepo.MarkRead(notificationID, s.now()); err != nil {
		if err == repositories.ErrNotificationNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.PersistenceError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllRead(userID, s.now()); err != nil {
		return apperrors.PersistenceError(err)
	}
	return nil
}

func (s *notificationService) GetUnreadCount(userID uuid.UUID) (int64, error) {
	count, err := s.notificationRepo.UnreadCount(userID)
	if err != nil {
		return 0, apperrors.PersistenceError(err)
	}
	return count, nil
}

func (s *notificationService) CreateSchedule(userID uuid.UUID, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule := &models.NotificationSchedule{
		UserID:       userID,
		ScheduleType: req.ScheduleType,
		TimeSlot:     req.TimeSlot,
		DaysOfWeek:   datatypes.JSONSlice[int](req.DaysOfWeek),
		IsActive:     true,
		AIEnabled:    req.AIEnabled,
	}
	if err := s.scheduleRepo.Create(schedule); err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	resp := dto.ToScheduleResponse(schedule)
	return &resp, nil
}

// formatDueDate renders a due date relative to now in whole days, rounding
// partial days up.
func formatDueDate(due, now time.Time) string {
	diffDays := int(math.Ceil(due.Sub(now).Hours() / 24))

	switch {
	case diffDays == 0:
		return "today"
	case diffDays == 1:
		return "tomorrow"
	case diffDays > 0:
		return fmt.Sprintf("in %d days", diffDays)
	case diffDays == -1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", -diffDays)
	}
}
