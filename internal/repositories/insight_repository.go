package repositories

import (
	"time"

	"projecthub_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InsightRepository interface {
	Create(insight *models.AIInsight) error
	FindRecentForUser(userID uuid.UUID, since time.Time) ([]models.AIInsight, error)
}

type InsightRepositoryImpl struct {
	db *gorm.DB
}

func NewInsightRepository(db *gorm.DB) InsightRepository {
	return &InsightRepositoryImpl{db: db}
}

func (r *InsightRepositoryImpl) Create(insight *models.AIInsight) error {
	return r.db.Create(insight).Error
}

func (r *InsightRepositoryImpl) FindRecentForUser(userID uuid.UUID, since time.Time) ([]models.AIInsight, error) {
	var insights []models.AIInsight
	err := r.db.
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&insights).Error
	return insights, err
}
