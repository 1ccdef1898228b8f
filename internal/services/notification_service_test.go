package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecthub_backend/internal/ai"
	"projecthub_backend/internal/models"
	"projecthub_backend/internal/notifications"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services/dto"
	"projecthub_backend/pkg/apperrors"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeNotificationRepo, schedRepo *fakeScheduleRepo, gen ai.TextGenerator) NotificationService {
	if gen == nil {
		gen = &stubGenerator{err: errors.New("ai down")}
	}
	return NewNotificationServiceWithClock(repo, schedRepo, ai.NewServiceWith(gen, nil), func() time.Time { return testNow })
}

func TestCreateTaskNotificationDueSchedulesOffset(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	due := testNow.Add(3 * time.Hour)
	task := &models.Task{
		BaseModel: models.BaseModel{ID: uuid.New()},
		ProjectID: uuid.New(),
		Title:     "Write release notes",
		DueDate:   &due,
	}
	userID := uuid.New()

	require.NoError(t, svc.CreateTaskNotification(userID, task, notifications.KindTaskDue))

	all := repo.all()
	require.Len(t, all, 1)
	n := all[0]
	assert.Equal(t, "Task Due Soon: Write release notes", n.Title)
	assert.Contains(t, n.Message, `"Write release notes" is due today`)
	require.NotNil(t, n.ScheduledFor)
	assert.Equal(t, due.Add(-time.Hour), *n.ScheduledFor)
	assert.Nil(t, n.SentAt, "factory must never mark notifications sent")
	assert.Equal(t, task.ID.String(), n.Metadata["task_id"])
}

func TestCreateTaskNotificationPastOffsetClampsToImmediate(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	// Due in 30 minutes: the one-hour offset lands in the past.
	due := testNow.Add(30 * time.Minute)
	task := &models.Task{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Title:     "Hotfix",
		DueDate:   &due,
	}

	require.NoError(t, svc.CreateTaskNotification(uuid.New(), task, notifications.KindTaskDue))

	all := repo.all()
	require.Len(t, all, 1)
	require.NotNil(t, all[0].ScheduledFor)
	assert.Equal(t, testNow, *all[0].ScheduledFor, "past schedule clamps to now so the next tick delivers it")
}

func TestCreateTaskNotificationDueWithoutDueDate(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	task := &models.Task{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Title:     "Untracked chore",
	}

	require.NoError(t, svc.CreateTaskNotification(uuid.New(), task, notifications.KindTaskDue))

	all := repo.all()
	require.Len(t, all, 1)
	assert.Equal(t, `Your task "Untracked chore" is due soon`, all[0].Message)
	assert.Nil(t, all[0].ScheduledFor)
}

func TestCreateTaskNotificationSuppressesDuplicates(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	due := testNow.Add(2 * time.Hour)
	task := &models.Task{BaseModel: models.BaseModel{ID: uuid.New()}, Title: "Demo prep", DueDate: &due}
	userID := uuid.New()

	require.NoError(t, svc.CreateTaskNotification(userID, task, notifications.KindTaskDue))
	require.NoError(t, svc.CreateTaskNotification(userID, task, notifications.KindTaskDue))

	assert.Len(t, repo.all(), 1, "second scan of the same task must not duplicate")
}

func TestCreateProjectNotificationDeadlineOffset(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	due := testNow.Add(10 * 24 * time.Hour)
	project := &models.Project{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Apollo",
		Progress:  40,
		DueDate:   &due,
	}

	require.NoError(t, svc.CreateProjectNotification(uuid.New(), project, notifications.KindProjectDeadline))

	all := repo.all()
	require.Len(t, all, 1)
	require.NotNil(t, all[0].ScheduledFor)
	assert.Equal(t, due.Add(-72*time.Hour), *all[0].ScheduledFor)
	assert.Equal(t, "Project Deadline: Apollo", all[0].Title)
}

func TestCreateMeetingNotificationOffsets(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	at := testNow.Add(time.Hour)
	meeting := &models.Meeting{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		Title:       "Sprint review",
		ScheduledAt: at,
		Duration:    45,
	}
	userID := uuid.New()

	require.NoError(t, svc.CreateMeetingNotification(userID, meeting, notifications.KindMeetingReminder))
	require.NoError(t, svc.CreateMeetingNotification(userID, meeting, notifications.KindMeetingStarting))

	all := repo.all()
	require.Len(t, all, 2)
	require.NotNil(t, all[0].ScheduledFor)
	assert.Equal(t, at.Add(-15*time.Minute), *all[0].ScheduledFor)
	require.NotNil(t, all[1].ScheduledFor)
	assert.Equal(t, at, *all[1].ScheduledFor)
}

func TestCreateAINotificationFallsBackToTemplate(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, &stubGenerator{err: errors.New("provider down")})

	require.NoError(t, svc.CreateAINotification(context.Background(), uuid.New(), notifications.KindSmartAlert, map[string]interface{}{"focus": "backend"}))

	all := repo.all()
	require.Len(t, all, 1)
	tpl := notifications.Lookup(notifications.KindSmartAlert)
	assert.Equal(t, tpl.Title, all[0].Title)
	assert.Equal(t, tpl.Message, all[0].Message)
	assert.Equal(t, false, all[0].Metadata["ai_generated"])
}

func TestCreateAINotificationUsesGeneratedContent(t *testing.T) {
	repo := newFakeNotificationRepo()
	gen := &stubGenerator{output: `{"title":"Custom","message":"Tailored message","priority":"high","actionable":true}`}
	svc := newTestService(repo, &fakeScheduleRepo{}, gen)

	require.NoError(t, svc.CreateAINotification(context.Background(), uuid.New(), notifications.KindAIRecommendation, nil))

	all := repo.all()
	require.Len(t, all, 1)
	assert.Equal(t, "Custom", all[0].Title)
	assert.Equal(t, "Tailored message", all[0].Message)
	assert.Equal(t, true, all[0].Metadata["ai_generated"])
	assert.Equal(t, "high", all[0].Metadata["priority"])
}

func TestCreateFromRequestUnknownType(t *testing.T) {
	svc := newTestService(newFakeNotificationRepo(), &fakeScheduleRepo{}, nil)

	err := svc.CreateFromRequest(context.Background(), uuid.New(), &dto.CreateTypedNotificationRequest{Type: "nonsense"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestCreateFromRequestTaskFamily(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	data, _ := json.Marshal(dto.TaskNotificationData{TaskID: uuid.New(), Title: "Ship it"})
	err := svc.CreateFromRequest(context.Background(), uuid.New(), &dto.CreateTypedNotificationRequest{
		Type: string(notifications.KindTaskCompleted),
		Data: data,
	})
	require.NoError(t, err)

	all := repo.all()
	require.Len(t, all, 1)
	assert.Equal(t, "Task Completed: Ship it", all[0].Title)
}

func TestMarkAsReadOwnership(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	owner := uuid.New()
	n := &models.Notification{UserID: owner, Type: "task_due", Title: "t", Message: "m"}
	require.NoError(t, repo.Create(n))

	err := svc.MarkAsRead(uuid.New(), n.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	require.NoError(t, svc.MarkAsRead(owner, n.ID))
	// Idempotent: a second read is a no-op.
	require.NoError(t, svc.MarkAsRead(owner, n.ID))
}

func TestMarkAsReadUnknownNotification(t *testing.T) {
	svc := newTestService(newFakeNotificationRepo(), &fakeScheduleRepo{}, nil)

	err := svc.MarkAsRead(uuid.New(), uuid.New())
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&models.Notification{UserID: userID, Type: "task_due", Title: "t", Message: "m"}))
	}

	count, err := svc.GetUnreadCount(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, svc.MarkAllAsRead(userID))

	count, err = svc.GetUnreadCount(userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetUserNotificationsFiltering(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	userID := uuid.New()
	require.NoError(t, repo.Create(&models.Notification{UserID: userID, Type: "task_due", Title: "a", Message: "m"}))
	require.NoError(t, repo.Create(&models.Notification{UserID: userID, Type: "smart_alert", Title: "b", Message: "m"}))
	require.NoError(t, repo.Create(&models.Notification{UserID: uuid.New(), Type: "task_due", Title: "c", Message: "m"}))

	list, err := svc.GetUserNotifications(userID, repositories.NotificationCriteria{Type: "task_due"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "a", list.Notifications[0].Title)
}

func TestGetUserNotificationsClassificationFilters(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	userID := uuid.New()
	task := &models.Task{BaseModel: models.BaseModel{ID: uuid.New()}, Title: "Pay invoices"}
	require.NoError(t, svc.CreateTaskNotification(userID, task, notifications.KindTaskOverdue))
	require.NoError(t, svc.CreateTaskNotification(userID, &models.Task{
		BaseModel: models.BaseModel{ID: uuid.New()}, Title: "Tidy board",
	}, notifications.KindTaskCompleted))

	overdueTpl := notifications.Lookup(notifications.KindTaskOverdue)
	list, err := svc.GetUserNotifications(userID, repositories.NotificationCriteria{Priority: string(overdueTpl.Priority)})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "task_overdue", list.Notifications[0].Type)

	list, err = svc.GetUserNotifications(userID, repositories.NotificationCriteria{Category: string(overdueTpl.Category)})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total, "both task notifications share the task category")
}

func TestCreateSchedule(t *testing.T) {
	schedRepo := &fakeScheduleRepo{}
	svc := newTestService(newFakeNotificationRepo(), schedRepo, nil)

	resp, err := svc.CreateSchedule(uuid.New(), &dto.CreateScheduleRequest{
		ScheduleType: "daily_summary",
		TimeSlot:     "08:30",
		DaysOfWeek:   []int{1, 3, 5},
		AIEnabled:    true,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Equal(t, "08:30", resp.TimeSlot)
	assert.Equal(t, []int{1, 3, 5}, resp.DaysOfWeek)
	require.Len(t, schedRepo.schedules, 1)
}

func TestCreateScheduledReminderMapsScheduleType(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	schedule := &models.NotificationSchedule{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		UserID:       uuid.New(),
		ScheduleType: "morning_notification",
		TimeSlot:     "08:00",
	}

	require.NoError(t, svc.CreateScheduledReminder(context.Background(), schedule))

	all := repo.all()
	require.Len(t, all, 1)
	n := all[0]
	assert.Equal(t, "morning_notification", n.Type)
	tpl := notifications.Lookup(notifications.KindMorningNotification)
	assert.Equal(t, tpl.Title, n.Title)
	assert.Equal(t, tpl.Message, n.Message)
	assert.Equal(t, schedule.ID.String(), n.Metadata["schedule_id"])
	assert.Equal(t, false, n.Metadata["ai_generated"])
}

func TestCreateScheduledReminderUnknownTypeFallsBackToCustom(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	schedule := &models.NotificationSchedule{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		UserID:       uuid.New(),
		ScheduleType: "stand_on_one_leg",
		TimeSlot:     "12:00",
	}

	require.NoError(t, svc.CreateScheduledReminder(context.Background(), schedule))

	all := repo.all()
	require.Len(t, all, 1)
	assert.Equal(t, "custom_reminder", all[0].Type)
	assert.Equal(t, "Scheduled Reminder", all[0].Title)
	assert.Equal(t, "This is your scheduled reminder from AI ProjectHub", all[0].Message)
}

func TestCreateScheduledReminderAIEnabled(t *testing.T) {
	repo := newFakeNotificationRepo()
	gen := &stubGenerator{output: `{"title":"Your morning focus","message":"Two tasks need you before standup.","priority":"medium"}`}
	svc := newTestService(repo, &fakeScheduleRepo{}, gen)

	schedule := &models.NotificationSchedule{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		UserID:       uuid.New(),
		ScheduleType: "morning_notification",
		TimeSlot:     "08:00",
		AIEnabled:    true,
	}

	require.NoError(t, svc.CreateScheduledReminder(context.Background(), schedule))

	all := repo.all()
	require.Len(t, all, 1)
	assert.Equal(t, "Your morning focus", all[0].Title)
	assert.Equal(t, "Two tasks need you before standup.", all[0].Message)
	assert.Equal(t, true, all[0].Metadata["ai_generated"])
}

func TestCreateScheduledReminderAIFailureUsesTemplate(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, &stubGenerator{err: errors.New("provider down")})

	schedule := &models.NotificationSchedule{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		UserID:       uuid.New(),
		ScheduleType: "morning_notification",
		TimeSlot:     "08:00",
		AIEnabled:    true,
	}

	require.NoError(t, svc.CreateScheduledReminder(context.Background(), schedule))

	all := repo.all()
	require.Len(t, all, 1)
	tpl := notifications.Lookup(notifications.KindMorningNotification)
	assert.Equal(t, tpl.Title, all[0].Title)
	assert.Equal(t, false, all[0].Metadata["ai_generated"])
}

func TestCreateStampsTemplateClassification(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := newTestService(repo, &fakeScheduleRepo{}, nil)

	task := &models.Task{BaseModel: models.BaseModel{ID: uuid.New()}, Title: "Ship it"}
	require.NoError(t, svc.CreateTaskNotification(uuid.New(), task, notifications.KindTaskCompleted))

	all := repo.all()
	require.Len(t, all, 1)
	meta := all[0].Metadata
	tpl := notifications.Lookup(notifications.KindTaskCompleted)
	assert.Equal(t, string(tpl.Priority), meta["priority"])
	assert.Equal(t, string(tpl.Category), meta["category"])
	assert.Equal(t, tpl.Icon, meta["icon"])
	assert.Equal(t, tpl.Color, meta["color"])
	assert.Equal(t, tpl.Actionable, meta["actionable"])
}

func TestCreateKeepsAIPriorityOverride(t *testing.T) {
	repo := newFakeNotificationRepo()
	gen := &stubGenerator{output: `{"title":"Custom","message":"Tailored","priority":"high"}`}
	svc := newTestService(repo, &fakeScheduleRepo{}, gen)

	require.NoError(t, svc.CreateAINotification(context.Background(), uuid.New(), notifications.KindAIRecommendation, nil))

	all := repo.all()
	require.Len(t, all, 1)
	// AI-chosen priority survives the classification stamp.
	assert.Equal(t, "high", all[0].Metadata["priority"])
	tpl := notifications.Lookup(notifications.KindAIRecommendation)
	assert.Equal(t, string(tpl.Category), all[0].Metadata["category"])
}

func TestFormatDueDate(t *testing.T) {
	now := testNow

	cases := []struct {
		name string
		due  time.Time
		want string
	}{
		{"same moment", now, "today"},
		{"later today", now.Add(6 * time.Hour), "tomorrow"}, // partial days round up
		{"exactly one day", now.Add(24 * time.Hour), "tomorrow"},
		{"three days out", now.Add(72 * time.Hour), "in 3 days"},
		{"earlier today", now.Add(-20 * time.Hour), "today"}, // under a day past still rounds to zero
		{"yesterday", now.Add(-30 * time.Hour), "yesterday"},
		{"long overdue", now.Add(-5 * 24 * time.Hour), "5 days ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatDueDate(tc.due, now))
		})
	}
}
