package services

import (
	"chronicle/internal/repositories"

	"gorm.io/gorm"
)

// DbServices aggregates the domain services backed by the database.
type DbServices struct {
	History      HistoryService
	ModelConfigs ModelConfigService
}

// NewDbServices constructs the service container using repositories backed
// by db.
func NewDbServices(db *gorm.DB) *DbServices {
	return &DbServices{
		History:      NewHistoryService(repositories.NewGenerationRepository(db)),
		ModelConfigs: NewModelConfigService(repositories.NewModelSettingRepository(db)),
	}
}
