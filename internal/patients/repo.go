package patients

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantcare/dispensary-backend/pkg/db/models"
)

// Repository defines persistence operations for patient records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.Patient, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Patient, error)
	Create(ctx context.Context, patient *models.Patient) (*models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a patients repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *repository) Create(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return nil, err
	}
	return patient, nil
}

// Update overwrites the whole record, not individual columns.
func (r *repository) Update(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("id = ?", patient.ID).
		Updates(map[string]any{
			"name":                     patient.Name,
			"medical_id":               patient.MedicalID,
			"prescription_limit_grams": patient.PrescriptionLimitGrams,
		}).Error
}
