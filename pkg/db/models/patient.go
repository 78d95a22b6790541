package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a registered patient with a monthly dispensing limit.
type Patient struct {
	ID                     uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name                   string    `gorm:"column:name;not null"`
	MedicalID              string    `gorm:"column:medical_id;not null;uniqueIndex"`
	PrescriptionLimitGrams int       `gorm:"column:prescription_limit_grams;not null"`
	CreatedAt              time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
