package repositories

import (
	"time"

	"projecthub_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository interface {
	// FindDueBetween returns open tasks with a due date inside (from, to].
	FindDueBetween(from, to time.Time) ([]models.Task, error)
	// FindOverdue returns tasks past their due date that were never completed.
	FindOverdue(now time.Time) ([]models.Task, error)
	FindDueToday(ownerID uuid.UUID, dayStart, dayEnd time.Time) ([]models.Task, error)
	FindUrgentOpen(ownerID uuid.UUID) ([]models.Task, error)
}

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) FindDueBetween(from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("Project").
		Where("status = ? AND due_date > ? AND due_date <= ?", models.TaskStatusTodo, from, to).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) FindOverdue(now time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("Project").
		Where("status <> ? AND due_date < ?", models.TaskStatusCompleted, now).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) FindDueToday(ownerID uuid.UUID, dayStart, dayEnd time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.owner_id = ?", ownerID).
		Where("tasks.status <> ? AND tasks.due_date >= ? AND tasks.due_date < ?",
			models.TaskStatusCompleted, dayStart, dayEnd).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) FindUrgentOpen(ownerID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.owner_id = ?", ownerID).
		Where("tasks.status <> ? AND tasks.priority = ?", models.TaskStatusCompleted, models.TaskPriorityUrgent).
		Find(&tasks).Error
	return tasks, err
}
