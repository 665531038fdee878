package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-insights/internal/models"
)

type StageRecordRepository interface {
	Create(record *models.StageRecord) error
	FindBySessionID(sessionID uuid.UUID, limit int) ([]models.StageRecord, error)
}

type stageRecordRepository struct {
	db *gorm.DB
}

func NewStageRecordRepository(db *gorm.DB) StageRecordRepository {
	return &stageRecordRepository{db: db}
}

func (r *stageRecordRepository) Create(record *models.StageRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create stage record: %w", err)
	}
	return nil
}

func (r *stageRecordRepository) FindBySessionID(sessionID uuid.UUID, limit int) ([]models.StageRecord, error) {
	var records []models.StageRecord
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find stage records: %w", err)
	}

	return records, nil
}
