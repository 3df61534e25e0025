package services

import (
	"fmt"

	"chronicle/internal/models"
	"chronicle/internal/repositories"

	"github.com/google/uuid"
)

// HistoryService records successful changelog runs.
type HistoryService interface {
	Save(record *models.GenerationRecord) (*models.GenerationRecord, error)
	List(limit int) ([]models.GenerationRecord, error)
	GetByID(id uint) (*models.GenerationRecord, error)
	DeleteByID(id uint) error
}

type historyService struct {
	repo repositories.GenerationRepository
}

func NewHistoryService(repo repositories.GenerationRepository) HistoryService {
	return &historyService{repo: repo}
}

// Save stores a finished run, assigning a session key when the caller did
// not provide one.
func (s *historyService) Save(record *models.GenerationRecord) (*models.GenerationRecord, error) {
	if record == nil {
		return nil, fmt.Errorf("record is required")
	}
	if record.Changelog == "" {
		return nil, fmt.Errorf("refusing to save a run without changelog text")
	}
	if record.SessionKey == "" {
		record.SessionKey = uuid.NewString()
	}
	if err := s.repo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *historyService) List(limit int) ([]models.GenerationRecord, error) {
	return s.repo.ListRecent(limit)
}

func (s *historyService) GetByID(id uint) (*models.GenerationRecord, error) {
	if id == 0 {
		return nil, fmt.Errorf("record ID is required")
	}
	return s.repo.GetByID(id)
}

func (s *historyService) DeleteByID(id uint) error {
	if id == 0 {
		return fmt.Errorf("record ID is required")
	}
	return s.repo.DeleteByID(id)
}
