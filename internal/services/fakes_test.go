package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"projecthub_backend/internal/models"
	"projecthub_backend/internal/repositories"
)

// In-memory repository fakes shared by the service and digest tests.

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
	markSentCalls int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) FindByID(id uuid.UUID) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) FindUserNotifications(userID uuid.UUID, criteria repositories.NotificationCriteria) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		n := f.notifications[i]
		if n.UserID != userID {
			continue
		}
		if criteria.UnreadOnly && n.Read {
			continue
		}
		if criteria.Type != "" && n.Type != criteria.Type {
			continue
		}
		if criteria.Priority != "" && n.Metadata["priority"] != criteria.Priority {
			continue
		}
		if criteria.Category != "" && n.Metadata["category"] != criteria.Category {
			continue
		}
		out = append(out, *n)
		if criteria.Limit > 0 && len(out) == criteria.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			if !n.Read {
				n.Read = true
				at := at
				n.ReadAt = &at
			}
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(userID uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			at := at
			n.ReadAt = &at
		}
	}
	return nil
}

func (f *fakeNotificationRepo) UnreadCount(userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) FindDueUnsent(now time.Time, limit int) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.notifications {
		if n.IsDue(now) {
			out = append(out, *n)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkSent(id uuid.UUID, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			if n.SentAt != nil {
				return false, nil
			}
			at := at
			n.SentAt = &at
			f.markSentCalls++
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) ExistsRecentForEntity(userID uuid.UUID, kind, metaKey, entityID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.UserID != userID || n.Type != kind || n.Read {
			continue
		}
		if v, ok := n.Metadata[metaKey]; ok && v == entityID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) all() []*models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out
}

func (f *fakeNotificationRepo) byType(kind string) []*models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}

type fakeScheduleRepo struct {
	mu        sync.Mutex
	schedules []*models.NotificationSchedule
}

func (f *fakeScheduleRepo) Create(s *models.NotificationSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.schedules = append(f.schedules, s)
	return nil
}

func (f *fakeScheduleRepo) FindActiveAt(timeSlot string) ([]models.NotificationSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.NotificationSchedule
	for _, s := range f.schedules {
		if s.IsActive && s.TimeSlot == timeSlot {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindWithPreference(key string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.NotificationPreferences == nil {
			continue
		}
		if v, ok := u.NotificationPreferences[key]; ok {
			if b, ok := v.(bool); ok && b {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

type fakeProjectRepo struct {
	projects []models.Project
}

func (f *fakeProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	for i := range f.projects {
		if f.projects[i].ID == id {
			return &f.projects[i], nil
		}
	}
	return nil, repositories.ErrProjectNotFound
}

func (f *fakeProjectRepo) FindActive() ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.Status == models.ProjectStatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) FindActiveByOwner(ownerID uuid.UUID) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.OwnerID == ownerID && p.Status == models.ProjectStatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeTaskRepo struct {
	tasks []models.Task
}

func (f *fakeTaskRepo) FindDueBetween(from, to time.Time) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.Status == models.TaskStatusTodo && t.DueDate != nil && t.DueDate.After(from) && !t.DueDate.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) FindOverdue(now time.Time) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.Status != models.TaskStatusCompleted && t.DueDate != nil && t.DueDate.Before(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) FindDueToday(ownerID uuid.UUID, dayStart, dayEnd time.Time) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.Status == models.TaskStatusCompleted || t.DueDate == nil {
			continue
		}
		if t.Project != nil && t.Project.OwnerID != ownerID {
			continue
		}
		if !t.DueDate.Before(dayStart) && t.DueDate.Before(dayEnd) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) FindUrgentOpen(ownerID uuid.UUID) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.Status != models.TaskStatusCompleted && t.Priority == models.TaskPriorityUrgent {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeMeetingRepo struct {
	meetings []models.Meeting
}

func (f *fakeMeetingRepo) FindScheduledBetween(from, to time.Time) ([]models.Meeting, error) {
	var out []models.Meeting
	for _, m := range f.meetings {
		if m.ScheduledAt.After(from) && !m.ScheduledAt.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepo) FindForUserBetween(ownerID uuid.UUID, from, to time.Time) ([]models.Meeting, error) {
	var out []models.Meeting
	for _, m := range f.meetings {
		if m.Project != nil && m.Project.OwnerID != ownerID {
			continue
		}
		if !m.ScheduledAt.Before(from) && m.ScheduledAt.Before(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeInsightRepo struct {
	insights []models.AIInsight
}

func (f *fakeInsightRepo) Create(i *models.AIInsight) error {
	f.insights = append(f.insights, *i)
	return nil
}

func (f *fakeInsightRepo) FindRecentForUser(userID uuid.UUID, since time.Time) ([]models.AIInsight, error) {
	var out []models.AIInsight
	for _, i := range f.insights {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

// stubGenerator implements ai.TextGenerator for fallback tests.
type stubGenerator struct {
	output string
	err    error
}

func (s *stubGenerator) Name() string { return "stub" }

func (s *stubGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.output, s.err
}
