package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"projecthub_backend/internal/ai"
	"projecthub_backend/internal/email"
	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/models"
	"projecthub_backend/internal/notifications"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/pkg/apperrors"
)

// UserContext aggregates everything the digest and the AI personalization
// need to know about a user's day.
type UserContext struct {
	User     *models.User
	Projects []models.Project
	Tasks    []models.Task
	Meetings []models.Meeting
	Insights []models.AIInsight
}

// DigestService builds the morning and evening summary notifications,
// including the intelligent alerts derived from the user's workload.
type DigestService interface {
	GenerateMorning(ctx context.Context, userID uuid.UUID) error
	GenerateEvening(userID uuid.UUID) error
	BuildUserContext(userID uuid.UUID) (*UserContext, error)
}

type digestService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	projectRepo      repositories.ProjectRepository
	taskRepo         repositories.TaskRepository
	meetingRepo      repositories.MeetingRepository
	insightRepo      repositories.InsightRepository
	aiService        *ai.Service
	now              func() time.Time
}

func NewDigestService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	meetingRepo repositories.MeetingRepository,
	insightRepo repositories.InsightRepository,
	aiService *ai.Service,
) DigestService {
	return &digestService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		projectRepo:      projectRepo,
		taskRepo:         taskRepo,
		meetingRepo:      meetingRepo,
		insightRepo:      insightRepo,
		aiService:        aiService,
		now:              time.Now,
	}
}

// NewDigestServiceWithClock pins the clock, used by tests.
func NewDigestServiceWithClock(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	meetingRepo repositories.MeetingRepository,
	insightRepo repositories.InsightRepository,
	aiService *ai.Service,
	now func() time.Time,
) DigestService {
	s := NewDigestService(notificationRepo, userRepo, projectRepo, taskRepo, meetingRepo, insightRepo, aiService).(*digestService)
	s.now = now
	return s
}

func (s *digestService) BuildUserContext(userID uuid.UUID) (*UserContext, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.PersistenceError(err)
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	projects, err := s.projectRepo.FindActiveByOwner(userID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	tasks, err := s.taskRepo.FindDueToday(userID, dayStart, dayEnd)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	meetings, err := s.meetingRepo.FindForUserBetween(userID, dayStart, dayEnd)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	insights, err := s.insightRepo.FindRecentForUser(userID, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	return &UserContext{
		User:     user,
		Projects: projects,
		Tasks:    tasks,
		Meetings: meetings,
		Insights: insights,
	}, nil
}

// GenerateMorning creates the personalized morning notification and any
// intelligent alerts the user's workload warrants. The digest payload is
// stored in the notification metadata so the dispatcher can render the
// full email at send time.
func (s *digestService) GenerateMorning(ctx context.Context, userID uuid.UUID) error {
	uc, err := s.BuildUserContext(userID)
	if err != nil {
		return err
	}

	tpl := notifications.Lookup(notifications.KindMorningNotification)
	title := tpl.Title
	message := tpl.Message
	aiGenerated := false

	content, genErr := s.aiService.GenerateNotificationContent(ctx, s.aiContext(uc), string(notifications.KindMorningNotification))
	if genErr != nil {
		logger.WithError(genErr).Warn("morning content generation failed, using template", "user_id", userID.String())
	} else {
		title = content.Title
		message = content.Message
		aiGenerated = true
	}

	digest := s.buildDigestPayload(uc, message)
	digestJSON, err := json.Marshal(digest)
	if err != nil {
		return apperrors.InternalError(err)
	}
	var digestMap map[string]interface{}
	if err := json.Unmarshal(digestJSON, &digestMap); err != nil {
		return apperrors.InternalError(err)
	}

	n := &models.Notification{
		UserID:    userID,
		Type:      string(notifications.KindMorningNotification),
		Title:     title,
		Message:   message,
		ActionURL: "/dashboard",
		Metadata: datatypes.JSONMap(map[string]interface{}{
			"ai_generated": aiGenerated,
			"generated_at": s.now().UTC().Format(time.RFC3339),
			"digest":       digestMap,
		}),
	}
	if err := s.notificationRepo.Create(n); err != nil {
		return apperrors.PersistenceError(err)
	}

	s.createIntelligentAlerts(userID, uc)
	return nil
}

// GenerateEvening creates the static evening wrap-up notification.
func (s *digestService) GenerateEvening(userID uuid.UUID) error {
	tpl := notifications.Lookup(notifications.KindEveningSummary)
	n := &models.Notification{
		UserID:    userID,
		Type:      string(notifications.KindEveningSummary),
		Title:     tpl.Title,
		Message:   tpl.Message,
		ActionURL: "/dashboard",
		Metadata: datatypes.JSONMap(map[string]interface{}{
			"ai_generated": true,
			"generated_at": s.now().UTC().Format(time.RFC3339),
		}),
	}
	if err := s.notificationRepo.Create(n); err != nil {
		return apperrors.PersistenceError(err)
	}
	return nil
}

func (s *digestService) buildDigestPayload(uc *UserContext, recommendation string) email.DigestData {
	data := email.DigestData{
		UserName:       uc.User.Name,
		ActiveProjects: len(uc.Projects),
		TasksDueToday:  len(uc.Tasks),
		MeetingsToday:  len(uc.Meetings),
		Recommendation: recommendation,
	}

	for i, task := range uc.Tasks {
		if i == 5 {
			break
		}
		dueTime := ""
		if task.DueDate != nil {
			dueTime = task.DueDate.Format("15:04")
		}
		data.Tasks = append(data.Tasks, email.DigestTask{
			Title:         task.Title,
			PriorityClass: "priority-" + string(task.Priority),
			DueTime:       dueTime,
		})
	}
	for _, meeting := range uc.Meetings {
		data.Meetings = append(data.Meetings, email.DigestMeeting{
			Title: meeting.Title,
			When:  meeting.ScheduledAt.Format("Jan 2, 15:04"),
		})
	}
	for i, insight := range uc.Insights {
		if i == 3 {
			break
		}
		data.Insights = append(data.Insights, email.DigestInsight{
			Title:       insight.Type,
			Description: insight.Content,
		})
	}
	return data
}

func (s *digestService) aiContext(uc *UserContext) map[string]interface{} {
	projectNames := make([]string, 0, len(uc.Projects))
	for _, p := range uc.Projects {
		projectNames = append(projectNames, p.Name)
	}
	taskTitles := make([]string, 0, len(uc.Tasks))
	for _, t := range uc.Tasks {
		taskTitles = append(taskTitles, t.Title)
	}
	meetingTitles := make([]string, 0, len(uc.Meetings))
	for _, m := range uc.Meetings {
		meetingTitles = append(meetingTitles, m.Title)
	}
	return map[string]interface{}{
		"name":            uc.User.Name,
		"active_projects": projectNames,
		"tasks_due_today": taskTitles,
		"meetings_today":  meetingTitles,
		"recent_insights": len(uc.Insights),
	}
}

// createIntelligentAlerts inspects the workload and raises smart alerts.
// Alert failures are logged, never fatal for the digest.
func (s *digestService) createIntelligentAlerts(userID uuid.UUID, uc *UserContext) {
	now := s.now()

	var urgent, dueSoon int
	for _, task := range uc.Tasks {
		if task.CompletedAt != nil {
			continue
		}
		if task.Priority == models.TaskPriorityUrgent {
			urgent++
		}
		if task.DueDate != nil {
			hoursUntilDue := task.DueDate.Sub(now).Hours()
			if hoursUntilDue > 0 && hoursUntilDue <= 24 {
				dueSoon++
			}
		}
	}

	if urgent > 0 {
		s.createAlert(userID, notifications.KindSmartAlert,
			"🚨 Urgent Tasks Alert",
			fmt.Sprintf("You have %d urgent %s requiring immediate attention.", urgent, pluralTask(urgent)),
			"/tasks?filter=urgent", "urgent_tasks", "high")
	}
	if dueSoon > 0 {
		s.createAlert(userID, notifications.KindSmartAlert,
			"⏰ Deadline Reminder",
			fmt.Sprintf("%d %s due within 24 hours.", dueSoon, pluralTask(dueSoon)),
			"/tasks", "upcoming_deadlines", "medium")
	}

	var atRisk int
	for _, project := range uc.Projects {
		if project.DueDate == nil {
			continue
		}
		if project.Progress < 30 && project.DueDate.Before(now.AddDate(0, 0, 7)) {
			atRisk++
		}
	}
	if atRisk > 0 {
		s.createAlert(userID, notifications.KindAIInsight,
			"⚠️ Project Health Alert",
			fmt.Sprintf("%d %s may be at risk of missing deadlines.", atRisk, pluralProject(atRisk)),
			"/projects", "project_health", "high")
	}
}

func (s *digestService) createAlert(userID uuid.UUID, kind notifications.Kind, title, message, actionURL, triggerType, priority string) {
	n := &models.Notification{
		UserID:    userID,
		Type:      string(kind),
		Title:     title,
		Message:   message,
		ActionURL: actionURL,
		Metadata: datatypes.JSONMap(map[string]interface{}{
			"priority":     priority,
			"ai_generated": true,
			"trigger_type": triggerType,
		}),
	}
	if err := s.notificationRepo.Create(n); err != nil {
		logger.WithError(err).Error("failed to create intelligent alert", "user_id", userID.String(), "kind", string(kind))
	}
}

func pluralTask(n int) string {
	if n == 1 {
		return "task"
	}
	return "tasks"
}

func pluralProject(n int) string {
	if n == 1 {
		return "project"
	}
	return "projects"
}
