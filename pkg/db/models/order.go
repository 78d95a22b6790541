package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/verdantcare/dispensary-backend/pkg/enums"
)

// Order represents a single dispensing request. Identity, references,
// quantity and creation time are immutable; only Status changes after
// creation, and only along the enums.OrderStatus transition table.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	PatientID     uuid.UUID         `gorm:"column:patient_id;type:uuid;not null;index:idx_orders_patient_created"`
	ProductID     uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	QuantityGrams int               `gorm:"column:quantity_grams;not null"`
	Status        enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Notes         *string           `gorm:"column:notes"`
	CreatedAt     time.Time         `gorm:"column:created_at;not null;index:idx_orders_patient_created"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
