// Package workers runs the scheduled notification jobs: the per-minute
// dispatch tick plus the periodic scans that generate new notifications.
package workers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"projecthub_backend/internal/email"
	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/models"
	"projecthub_backend/internal/notifications"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services"
)

const dispatchBatchSize = 200

// job is one scheduled unit of work. Due decides whether the job fires at
// a given minute tick.
type job struct {
	Name string
	Due  func(t time.Time) bool
	Run  func(ctx context.Context, now time.Time)
}

// NotificationWorker owns the notification job schedule. A single
// minute-resolution loop evaluates each job's cadence predicate, so all
// recurring work shares one clock.
type NotificationWorker struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	projectRepo      repositories.ProjectRepository
	taskRepo         repositories.TaskRepository
	meetingRepo      repositories.MeetingRepository
	scheduleRepo     repositories.ScheduleRepository

	notificationService services.NotificationService
	digestService       services.DigestService

	renderer  *email.Renderer
	transport email.Transport

	now  func() time.Time
	jobs []job
}

func NewNotificationWorker(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	meetingRepo repositories.MeetingRepository,
	scheduleRepo repositories.ScheduleRepository,
	notificationService services.NotificationService,
	digestService services.DigestService,
	renderer *email.Renderer,
	transport email.Transport,
) *NotificationWorker {
	w := &NotificationWorker{
		notificationRepo:    notificationRepo,
		userRepo:            userRepo,
		projectRepo:         projectRepo,
		taskRepo:            taskRepo,
		meetingRepo:         meetingRepo,
		scheduleRepo:        scheduleRepo,
		notificationService: notificationService,
		digestService:       digestService,
		renderer:            renderer,
		transport:           transport,
		now:                 time.Now,
	}
	w.jobs = []job{
		{"dispatch_due", everyMinute, w.processDueNotifications},
		{"expand_schedules", everyMinute, w.expandSchedules},
		{"meeting_reminders", every15Minutes, w.scanMeetingReminders},
		{"task_deadlines", hourly, w.scanTaskDeadlines},
		{"project_health", every6Hours, w.scanProjectHealth},
		{"morning_digest", dailyAt(8, 0), w.runMorningDigests},
		{"evening_summary", dailyAt(18, 0), w.runEveningSummaries},
		{"weekly_reports", weeklyAt(time.Monday, 9, 0), w.runWeeklyReports},
		{"monthly_reports", monthlyAt(1, 9, 0), w.runMonthlyReports},
	}
	return w
}

// Start runs the scheduler loop until the context is cancelled.
func (w *NotificationWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *NotificationWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	logger.Info("notification worker started", "jobs", len(w.jobs))
	for {
		select {
		case <-ctx.Done():
			logger.Info("notification worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx, w.now())
		}
	}
}

// tick launches every job whose cadence matches the given minute.
func (w *NotificationWorker) tick(ctx context.Context, now time.Time) {
	now = now.Truncate(time.Minute)
	for _, j := range w.jobs {
		if !j.Due(now) {
			continue
		}
		go func(j job) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("notification job panicked", "job", j.Name, "panic", r)
				}
			}()
			j.Run(ctx, now)
		}(j)
	}
}

// Cadence predicates. All evaluate minute-truncated times.

func everyMinute(time.Time) bool { return true }

func every15Minutes(t time.Time) bool { return t.Minute()%15 == 0 }

func hourly(t time.Time) bool { return t.Minute() == 0 }

func every6Hours(t time.Time) bool { return t.Minute() == 0 && t.Hour()%6 == 0 }

func dailyAt(hour, minute int) func(time.Time) bool {
	return func(t time.Time) bool { return t.Hour() == hour && t.Minute() == minute }
}

func weeklyAt(day time.Weekday, hour, minute int) func(time.Time) bool {
	return func(t time.Time) bool {
		return t.Weekday() == day && t.Hour() == hour && t.Minute() == minute
	}
}

func monthlyAt(dayOfMonth, hour, minute int) func(time.Time) bool {
	return func(t time.Time) bool {
		return t.Day() == dayOfMonth && t.Hour() == hour && t.Minute() == minute
	}
}

// processDueNotifications delivers every due unsent notification. The
// conditional sent_at flip claims the notification first, so concurrent
// ticks send each one at most once; a failed email after a won claim is
// logged and dropped, not retried.
func (w *NotificationWorker) processDueNotifications(ctx context.Context, now time.Time) {
	due, err := w.notificationRepo.FindDueUnsent(now, dispatchBatchSize)
	if err != nil {
		logger.WithError(err).Error("failed to load due notifications")
		return
	}

	processed := 0
	for i := range due {
		if ctx.Err() != nil {
			return
		}
		if w.deliver(&due[i], now) {
			processed++
		}
	}
	if processed > 0 {
		logger.TickLog("dispatch_due", processed, nil)
	}
}

func (w *NotificationWorker) deliver(n *models.Notification, now time.Time) bool {
	won, err := w.notificationRepo.MarkSent(n.ID, now)
	if err != nil {
		logger.WithError(err).Error("failed to claim notification", "notification_id", n.ID.String())
		return false
	}
	if !won {
		return false
	}

	user, err := w.userRepo.FindByID(n.UserID)
	if err != nil {
		logger.WithError(err).Warn("notification user not found, skipping email", "notification_id", n.ID.String())
		return true
	}
	if !user.EmailEnabledFor(n.Type) {
		return true
	}

	html, err := w.renderEmail(user, n)
	if err != nil {
		logger.WithError(err).Error("failed to render notification email", "notification_id", n.ID.String())
		return true
	}
	if err := w.transport.Send(user.Email, n.Title, html); err != nil {
		logger.WithError(err).Error("failed to send notification email", "notification_id", n.ID.String(), "user_id", user.ID.String())
	}
	return true
}

func (w *NotificationWorker) renderEmail(user *models.User, n *models.Notification) (string, error) {
	kind := notifications.Kind(n.Type)

	if kind == notifications.KindMorningNotification {
		if payload, ok := n.Metadata["digest"]; ok {
			raw, err := json.Marshal(payload)
			if err == nil {
				var digest email.DigestData
				if err := json.Unmarshal(raw, &digest); err == nil {
					return w.renderer.MorningDigest(digest)
				}
			}
			logger.Warn("malformed digest payload, falling back to plain email", "notification_id", n.ID.String())
		}
	}

	extras := email.Extras{}
	if items, ok := n.Metadata["action_items"].([]interface{}); ok {
		for _, item := range items {
			if s, ok := item.(string); ok {
				extras.ActionItems = append(extras.ActionItems, s)
			}
		}
	}
	return w.renderer.Notification(kind, n.Title, n.Message, extras)
}

// scanTaskDeadlines raises task_due notifications for tasks inside the
// next-hour and next-day windows, and task_overdue for anything past due.
func (w *NotificationWorker) scanTaskDeadlines(ctx context.Context, now time.Time) {
	oneHour := now.Add(time.Hour)
	oneDay := now.Add(24 * time.Hour)

	dueSoon, err := w.taskRepo.FindDueBetween(now, oneHour)
	if err != nil {
		logger.WithError(err).Error("task deadline scan: due-in-hour query failed")
		return
	}
	dueToday, err := w.taskRepo.FindDueBetween(oneHour, oneDay)
	if err != nil {
		logger.WithError(err).Error("task deadline scan: due-in-day query failed")
		return
	}
	overdue, err := w.taskRepo.FindOverdue(now)
	if err != nil {
		logger.WithError(err).Error("task deadline scan: overdue query failed")
		return
	}

	for i := range dueSoon {
		w.notifyTaskOwner(&dueSoon[i], notifications.KindTaskDue)
	}
	for i := range dueToday {
		w.notifyTaskOwner(&dueToday[i], notifications.KindTaskDue)
	}
	for i := range overdue {
		w.notifyTaskOwner(&overdue[i], notifications.KindTaskOverdue)
	}
}

func (w *NotificationWorker) notifyTaskOwner(task *models.Task, kind notifications.Kind) {
	if task.Project == nil {
		logger.Warn("task without project in deadline scan", "task_id", task.ID.String())
		return
	}
	if err := w.notificationService.CreateTaskNotification(task.Project.OwnerID, task, kind); err != nil {
		logger.WithError(err).Error("failed to create task notification", "task_id", task.ID.String(), "kind", string(kind))
	}
}

// scanProjectHealth checks every active project against its deadline. The
// at-risk and deadline conditions are independent: a project can trigger
// both in the same pass.
func (w *NotificationWorker) scanProjectHealth(ctx context.Context, now time.Time) {
	projects, err := w.projectRepo.FindActive()
	if err != nil {
		logger.WithError(err).Error("project health scan failed")
		return
	}

	for i := range projects {
		project := &projects[i]
		if project.DueDate == nil {
			continue
		}
		daysUntilDue := daysUntil(now, *project.DueDate)

		if daysUntilDue <= 7 && project.Progress < 50 {
			if err := w.notificationService.CreateProjectNotification(project.OwnerID, project, notifications.KindProjectAtRisk); err != nil {
				logger.WithError(err).Error("failed to create at-risk notification", "project_id", project.ID.String())
			}
		}
		if daysUntilDue <= 3 && daysUntilDue > 0 {
			if err := w.notificationService.CreateProjectNotification(project.OwnerID, project, notifications.KindProjectDeadline); err != nil {
				logger.WithError(err).Error("failed to create deadline notification", "project_id", project.ID.String())
			}
		}
	}
}

// daysUntil counts whole days from now to due, rounding partial days up.
func daysUntil(now, due time.Time) int {
	diff := due.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// scanMeetingReminders raises reminders for meetings starting within the
// next fifteen minutes. The owner is the meeting creator when set,
// otherwise the project owner.
func (w *NotificationWorker) scanMeetingReminders(ctx context.Context, now time.Time) {
	meetings, err := w.meetingRepo.FindScheduledBetween(now, now.Add(15*time.Minute))
	if err != nil {
		logger.WithError(err).Error("meeting reminder scan failed")
		return
	}

	for i := range meetings {
		meeting := &meetings[i]
		userID := meetingOwner(meeting)
		if userID == uuid.Nil {
			logger.Warn("meeting without resolvable owner", "meeting_id", meeting.ID.String())
			continue
		}
		if err := w.notificationService.CreateMeetingNotification(userID, meeting, notifications.KindMeetingReminder); err != nil {
			logger.WithError(err).Error("failed to create meeting reminder", "meeting_id", meeting.ID.String())
		}
	}
}

func meetingOwner(meeting *models.Meeting) uuid.UUID {
	if meeting.CreatedBy != nil {
		return *meeting.CreatedBy
	}
	if meeting.Project != nil {
		return meeting.Project.OwnerID
	}
	return uuid.Nil
}

// expandSchedules fires user-defined recurring schedules whose time slot
// matches the current minute exactly and whose weekday set includes today.
func (w *NotificationWorker) expandSchedules(ctx context.Context, now time.Time) {
	slot := now.Format("15:04")
	schedules, err := w.scheduleRepo.FindActiveAt(slot)
	if err != nil {
		logger.WithError(err).Error("schedule expansion failed", "slot", slot)
		return
	}

	for i := range schedules {
		schedule := &schedules[i]
		if !schedule.MatchesDay(now.Weekday()) {
			continue
		}
		if err := w.notificationService.CreateScheduledReminder(ctx, schedule); err != nil {
			logger.WithError(err).Error("failed to create scheduled reminder", "schedule_id", schedule.ID.String())
		}
	}
}

func (w *NotificationWorker) runMorningDigests(ctx context.Context, now time.Time) {
	w.forEachSubscriber("morning_notifications", func(user *models.User) {
		if err := w.digestService.GenerateMorning(ctx, user.ID); err != nil {
			logger.WithError(err).Error("morning digest failed", "user_id", user.ID.String())
		}
	})
}

func (w *NotificationWorker) runEveningSummaries(ctx context.Context, now time.Time) {
	w.forEachSubscriber("evening_summary", func(user *models.User) {
		if err := w.digestService.GenerateEvening(user.ID); err != nil {
			logger.WithError(err).Error("evening summary failed", "user_id", user.ID.String())
		}
	})
}

func (w *NotificationWorker) runWeeklyReports(ctx context.Context, now time.Time) {
	w.forEachSubscriber("weekly_report", func(user *models.User) {
		err := w.notificationService.CreateReportNotification(user.ID, notifications.KindWeeklyReport, map[string]interface{}{
			"period": "week",
		})
		if err != nil {
			logger.WithError(err).Error("weekly report failed", "user_id", user.ID.String())
		}
	})
}

func (w *NotificationWorker) runMonthlyReports(ctx context.Context, now time.Time) {
	w.forEachSubscriber("monthly_report", func(user *models.User) {
		err := w.notificationService.CreateReportNotification(user.ID, notifications.KindMonthlyReport, map[string]interface{}{
			"period": "month",
		})
		if err != nil {
			logger.WithError(err).Error("monthly report failed", "user_id", user.ID.String())
		}
	})
}

func (w *NotificationWorker) forEachSubscriber(preference string, fn func(*models.User)) {
	users, err := w.userRepo.FindWithPreference(preference)
	if err != nil {
		logger.WithError(err).Error("failed to load subscribers", "preference", preference)
		return
	}
	for i := range users {
		fn(&users[i])
	}
}
