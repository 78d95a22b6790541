package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verdantcare/dispensary-backend/api/responses"
	"github.com/verdantcare/dispensary-backend/api/validators"
	patientsvc "github.com/verdantcare/dispensary-backend/internal/patients"
	"github.com/verdantcare/dispensary-backend/pkg/db/models"
	pkgerrors "github.com/verdantcare/dispensary-backend/pkg/errors"
	"github.com/verdantcare/dispensary-backend/pkg/logger"
)

type patientResponse struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	MedicalID              string    `json:"medicalId"`
	PrescriptionLimitGrams int       `json:"prescriptionLimitGrams"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func toPatientResponse(patient models.Patient) patientResponse {
	return patientResponse{
		ID:                     patient.ID,
		Name:                   patient.Name,
		MedicalID:              patient.MedicalID,
		PrescriptionLimitGrams: patient.PrescriptionLimitGrams,
		CreatedAt:              patient.CreatedAt,
		UpdatedAt:              patient.UpdatedAt,
	}
}

type upsertPatientRequest struct {
	ID                     *string `json:"id,omitempty" validate:"omitempty,uuid"`
	Name                   string  `json:"name" validate:"required"`
	MedicalID              string  `json:"medicalId" validate:"required"`
	PrescriptionLimitGrams int     `json:"prescriptionLimitGrams" validate:"required,gt=0"`
}

func (r upsertPatientRequest) toInput() (patientsvc.UpsertInput, error) {
	input := patientsvc.UpsertInput{
		Name:                   strings.TrimSpace(r.Name),
		MedicalID:              strings.TrimSpace(r.MedicalID),
		PrescriptionLimitGrams: r.PrescriptionLimitGrams,
	}
	if r.ID != nil && strings.TrimSpace(*r.ID) != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(*r.ID))
		if err != nil {
			return patientsvc.UpsertInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid patient id")
		}
		input.ID = &parsed
	}
	return input, nil
}

// ListPatients returns every registered patient.
func ListPatients(svc patientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "patient service unavailable"))
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]patientResponse, 0, len(items))
		for _, item := range items {
			payload = append(payload, toPatientResponse(item))
		}
		responses.WriteSuccess(w, payload)
	}
}

// UpsertPatient creates a patient, or fully replaces one when the supplied id
// matches an existing record.
func UpsertPatient(svc patientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "patient service unavailable"))
			return
		}

		var payload upsertPatientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patient, err := svc.Upsert(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toPatientResponse(*patient))
	}
}
