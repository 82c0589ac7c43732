package models

import (
	"time"

	"gorm.io/datatypes"
)

// Attempt outcome values.
const (
	OutcomeEvaluated = "evaluated"
	OutcomeDegraded  = "degraded"
	OutcomeFailed    = "failed"
)

// Attempt is one answered interview question together with its evaluation.
// Records are append-only; nothing mutates an attempt after creation.
type Attempt struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	ReferenceID string            `gorm:"size:36;uniqueIndex" json:"reference_id"`
	UserName    string            `gorm:"size:120" json:"user_name"`
	Role        string            `gorm:"size:120;not null" json:"role"`
	Level       string            `gorm:"size:32;not null" json:"level"`
	Question    string            `gorm:"type:text;not null" json:"question"`
	Answer      string            `gorm:"type:text;not null" json:"answer"`
	Evaluation  datatypes.JSONMap `json:"evaluation"`
	Outcome     string            `gorm:"size:16;not null" json:"outcome"`
	Provider    string            `gorm:"size:32" json:"provider"`
	Model       string            `gorm:"size:64" json:"model"`
	CreatedAt   time.Time         `json:"created_at"`
}
