package repositories

import (
	"errors"
	"time"

	"projecthub_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id uuid.UUID) (*models.Notification, error)
	FindUserNotifications(userID uuid.UUID, criteria NotificationCriteria) ([]models.Notification, error)
	MarkRead(id uuid.UUID, at time.Time) error
	MarkAllRead(userID uuid.UUID, at time.Time) error
	UnreadCount(userID uuid.UUID) (int64, error)

	// Dispatch support.
	FindDueUnsent(now time.Time, limit int) ([]models.Notification, error)
	MarkSent(id uuid.UUID, at time.Time) (bool, error)
	ExistsRecentForEntity(userID uuid.UUID, kind, metaKey, entityID string) (bool, error)
}

type NotificationCriteria struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Priority   string `form:"priority"`
	Category   string `form:"category"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID uuid.UUID, criteria NotificationCriteria) ([]models.Notification, error) {
	query := r.db.Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}
	if criteria.Priority != "" {
		query = query.Where("metadata ->> 'priority' = ?", criteria.Priority)
	}
	if criteria.Category != "" {
		query = query.Where("metadata ->> 'category' = ?", criteria.Category)
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = 50
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

// MarkRead is idempotent: re-reading an already read notification is a no-op,
// an unknown id is ErrNotificationNotFound.
func (r *NotificationRepositoryImpl) MarkRead(id uuid.UUID, at time.Time) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND read = ?", id, false).
		Updates(map[string]interface{}{"read": true, "read_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Notification{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotificationNotFound
		}
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(userID uuid.UUID, at time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": at}).Error
}

func (r *NotificationRepositoryImpl) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) FindDueUnsent(now time.Time, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("sent_at IS NULL AND (scheduled_for IS NULL OR scheduled_for <= ?)", now).
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkSent flips sent_at exactly once. The conditional update is the
// at-most-once authority for delivery: the caller that gets true owns the
// send, everyone else backs off.
func (r *NotificationRepositoryImpl) MarkSent(id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND sent_at IS NULL", id).
		Update("sent_at", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExistsRecentForEntity reports whether the user already has an unread
// notification of the same kind pointing at the same entity. Used by the
// scanners to suppress duplicate triggers.
func (r *NotificationRepositoryImpl) ExistsRecentForEntity(userID uuid.UUID, kind, metaKey, entityID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND read = ?", userID, kind, false).
		Where("metadata ->> ? = ?", metaKey, entityID).
		Count(&count).Error
	return count > 0, err
}
