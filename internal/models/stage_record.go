package models

import (
	"time"

	"github.com/google/uuid"
)

type Stage string

const (
	StageInsights   Stage = "insights"
	StageJobDetails Stage = "job_details"
	StageFit        Stage = "fit"
)

type StageStatus string

const (
	StageCompleted      StageStatus = "completed"
	StageFailed         StageStatus = "failed"
	StageSchemaMismatch StageStatus = "schema_mismatch"
)

// StageRecord is an audit row written for every stage attempt, successful or
// not. The live result lives in the session cache; this table only keeps the
// history.
type StageRecord struct {
	ID           uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"session_id"`
	Stage        Stage       `gorm:"type:text;not null" json:"stage"`
	Status       StageStatus `gorm:"type:text;not null" json:"status"`
	Payload      *string     `gorm:"type:text" json:"payload,omitempty"`
	ErrorMessage *string     `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (StageRecord) TableName() string {
	return "stage_records"
}
