package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a dispensable inventory item. Stock is gram-denominated
// and only ever decreases through order creation.
type Product struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	THCPercent   float64         `gorm:"column:thc_percent;type:numeric(5,2);not null;default:0"`
	CBDPercent   float64         `gorm:"column:cbd_percent;type:numeric(5,2);not null;default:0"`
	StockGrams   int             `gorm:"column:stock_grams;not null"`
	PricePerGram decimal.Decimal `gorm:"column:price_per_gram;type:numeric(10,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
