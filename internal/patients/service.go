package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantcare/dispensary-backend/pkg/db/models"
	pkgerrors "github.com/verdantcare/dispensary-backend/pkg/errors"
)

// UpsertInput carries the patient payload. A nil ID, or an ID that matches no
// existing record, results in a freshly generated identity.
type UpsertInput struct {
	ID                     *uuid.UUID
	Name                   string
	MedicalID              string
	PrescriptionLimitGrams int
}

// Service defines patient-level operations.
type Service interface {
	List(ctx context.Context) ([]models.Patient, error)
	Upsert(ctx context.Context, input UpsertInput) (*models.Patient, error)
}

type service struct {
	repo Repository
}

// NewService builds a patients service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("patients repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list patients")
	}
	return patients, nil
}

func (s *service) Upsert(ctx context.Context, input UpsertInput) (*models.Patient, error) {
	if err := validateUpsert(input); err != nil {
		return nil, err
	}

	if input.ID != nil && *input.ID != uuid.Nil {
		existing, err := s.repo.FindByID(ctx, *input.ID)
		switch {
		case err == nil:
			replacement := &models.Patient{
				ID:                     existing.ID,
				Name:                   input.Name,
				MedicalID:              input.MedicalID,
				PrescriptionLimitGrams: input.PrescriptionLimitGrams,
			}
			if err := s.repo.Update(ctx, replacement); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update patient")
			}
			return replacement, nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			// fall through to create with a new identity
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load patient")
		}
	}

	created := &models.Patient{
		ID:                     uuid.New(),
		Name:                   input.Name,
		MedicalID:              input.MedicalID,
		PrescriptionLimitGrams: input.PrescriptionLimitGrams,
	}
	if _, err := s.repo.Create(ctx, created); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create patient")
	}
	return created, nil
}

func validateUpsert(input UpsertInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "patient name required")
	}
	if strings.TrimSpace(input.MedicalID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "medical id required")
	}
	if input.PrescriptionLimitGrams <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "prescription limit must be positive")
	}
	return nil
}
