package repositories

import (
	"errors"

	"projecthub_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	FindByID(id uuid.UUID) (*models.Project, error)
	FindActive() ([]models.Project, error)
	FindActiveByOwner(ownerID uuid.UUID) ([]models.Project, error)
}

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) FindActive() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("status = ?", models.ProjectStatusActive).Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) FindActiveByOwner(ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Where("owner_id = ? AND status = ?", ownerID, models.ProjectStatusActive).
		Find(&projects).Error
	return projects, err
}
