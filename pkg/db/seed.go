package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/verdantcare/dispensary-backend/pkg/db/models"
	"github.com/verdantcare/dispensary-backend/pkg/enums"
	"github.com/verdantcare/dispensary-backend/pkg/logger"
)

// Fixed identities so the seeded order can reference the seeded catalog rows
// and repeated boots stay stable across environments.
var (
	seedProductBlueDream = uuid.MustParse("6f1e1d1a-0001-4a7e-9d7c-1b2f3a4c5d01")
	seedProductOGKush    = uuid.MustParse("6f1e1d1a-0002-4a7e-9d7c-1b2f3a4c5d02")
	seedPatientJohnDoe   = uuid.MustParse("aa2b3c4d-0001-4e5f-8a9b-0c1d2e3f4a01")
	seedPatientJaneSmith = uuid.MustParse("aa2b3c4d-0002-4e5f-8a9b-0c1d2e3f4a02")
	seedOrderFirst       = uuid.MustParse("cc4d5e6f-0001-4a1b-9c8d-7e6f5a4b3c01")
)

// Seed bootstraps each collection with fixed sample rows, but only when that
// collection is still empty. It never overwrites existing data.
func Seed(ctx context.Context, client *Client, logg *logger.Logger) error {
	if client == nil {
		return fmt.Errorf("db client is required")
	}

	return client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := seedProducts(ctx, tx); err != nil {
			return fmt.Errorf("seeding products: %w", err)
		}
		if err := seedPatients(ctx, tx); err != nil {
			return fmt.Errorf("seeding patients: %w", err)
		}
		if err := seedOrders(ctx, tx); err != nil {
			return fmt.Errorf("seeding orders: %w", err)
		}
		if logg != nil {
			logg.Info(ctx, "seed check complete")
		}
		return nil
	})
}

func seedProducts(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	products := []models.Product{
		{
			ID:           seedProductBlueDream,
			Name:         "Blue Dream",
			THCPercent:   20,
			CBDPercent:   2,
			StockGrams:   100,
			PricePerGram: decimal.NewFromInt(10),
		},
		{
			ID:           seedProductOGKush,
			Name:         "OG Kush",
			THCPercent:   25,
			CBDPercent:   1,
			StockGrams:   50,
			PricePerGram: decimal.NewFromInt(12),
		},
	}
	return tx.WithContext(ctx).Create(&products).Error
}

func seedPatients(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.Patient{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	patients := []models.Patient{
		{
			ID:                     seedPatientJohnDoe,
			Name:                   "John Doe",
			MedicalID:              "MED123",
			PrescriptionLimitGrams: 30,
		},
		{
			ID:                     seedPatientJaneSmith,
			Name:                   "Jane Smith",
			MedicalID:              "MED456",
			PrescriptionLimitGrams: 50,
		},
	}
	return tx.WithContext(ctx).Create(&patients).Error
}

func seedOrders(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	notes := "First order"
	order := models.Order{
		ID:            seedOrderFirst,
		PatientID:     seedPatientJohnDoe,
		ProductID:     seedProductBlueDream,
		QuantityGrams: 5,
		Status:        enums.OrderStatusPending,
		Notes:         &notes,
		CreatedAt:     time.Now().UTC(),
	}
	return tx.WithContext(ctx).Create(&order).Error
}
