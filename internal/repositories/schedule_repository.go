package repositories

import (
	"projecthub_backend/internal/models"

	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Create(schedule *models.NotificationSchedule) error
	// FindActiveAt returns active schedules whose time slot matches the
	// given "HH:MM" value exactly. Weekday filtering is done in memory.
	FindActiveAt(timeSlot string) ([]models.NotificationSchedule, error)
}

type ScheduleRepositoryImpl struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &ScheduleRepositoryImpl{db: db}
}

func (r *ScheduleRepositoryImpl) Create(schedule *models.NotificationSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *ScheduleRepositoryImpl) FindActiveAt(timeSlot string) ([]models.NotificationSchedule, error) {
	var schedules []models.NotificationSchedule
	err := r.db.
		Where("is_active = ? AND time_slot = ?", true, timeSlot).
		Find(&schedules).Error
	return schedules, err
}
