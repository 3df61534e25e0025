package repositories

import (
	"errors"
	"fmt"

	"chronicle/internal/models"

	"gorm.io/gorm"
)

type GenerationRepository interface {
	Create(record *models.GenerationRecord) error
	GetByID(id uint) (*models.GenerationRecord, error)
	ListRecent(limit int) ([]models.GenerationRecord, error)
	DeleteByID(id uint) error
}

type generationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) Create(record *models.GenerationRecord) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	return r.db.Create(record).Error
}

func (r *generationRepository) GetByID(id uint) (*models.GenerationRecord, error) {
	var record models.GenerationRecord
	if err := r.db.Take(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *generationRepository) ListRecent(limit int) ([]models.GenerationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []models.GenerationRecord
	if err := r.db.Order("created_at desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *generationRepository) DeleteByID(id uint) error {
	return r.db.Delete(&models.GenerationRecord{}, id).Error
}
