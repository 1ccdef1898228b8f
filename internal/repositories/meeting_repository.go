package repositories

import (
	"time"

	"projecthub_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MeetingRepository interface {
	// FindScheduledBetween returns meetings starting inside (from, to].
	FindScheduledBetween(from, to time.Time) ([]models.Meeting, error)
	FindForUserBetween(ownerID uuid.UUID, from, to time.Time) ([]models.Meeting, error)
}

type MeetingRepositoryImpl struct {
	db *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &MeetingRepositoryImpl{db: db}
}

func (r *MeetingRepositoryImpl) FindScheduledBetween(from, to time.Time) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := r.db.Preload("Project").
		Where("scheduled_at > ? AND scheduled_at <= ?", from, to).
		Find(&meetings).Error
	return meetings, err
}

func (r *MeetingRepositoryImpl) FindForUserBetween(ownerID uuid.UUID, from, to time.Time) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := r.db.
		Joins("JOIN projects ON projects.id = meetings.project_id").
		Where("projects.owner_id = ?", ownerID).
		Where("meetings.scheduled_at >= ? AND meetings.scheduled_at < ?", from, to).
		Order("meetings.scheduled_at ASC").
		Find(&meetings).Error
	return meetings, err
}
