package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	patientsvc "github.com/verdantcare/dispensary-backend/internal/patients"
	"github.com/verdantcare/dispensary-backend/pkg/db/models"
)

type stubPatientService struct {
	patients  []models.Patient
	upserted  *patientsvc.UpsertInput
	upsertErr error
}

func (s *stubPatientService) List(ctx context.Context) ([]models.Patient, error) {
	return s.patients, nil
}

func (s *stubPatientService) Upsert(ctx context.Context, input patientsvc.UpsertInput) (*models.Patient, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	s.upserted = &input
	id := uuid.New()
	if input.ID != nil {
		id = *input.ID
	}
	return &models.Patient{
		ID:                     id,
		Name:                   input.Name,
		MedicalID:              input.MedicalID,
		PrescriptionLimitGrams: input.PrescriptionLimitGrams,
	}, nil
}

func TestUpsertPatient(t *testing.T) {
	logg := testLogger()

	t.Run("create", func(t *testing.T) {
		stub := &stubPatientService{}
		body := `{"name":"John Doe","medicalId":"MED123","prescriptionLimitGrams":30}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
		rec := httptest.NewRecorder()

		UpsertPatient(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.upserted == nil || stub.upserted.ID != nil {
			t.Fatalf("expected create input without id, got %+v", stub.upserted)
		}

		var envelope struct {
			Data patientResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if envelope.Data.MedicalID != "MED123" {
			t.Fatalf("unexpected medicalId %q", envelope.Data.MedicalID)
		}
	})

	t.Run("replace with id", func(t *testing.T) {
		stub := &stubPatientService{}
		id := uuid.New()
		body := `{"id":"` + id.String() + `","name":"John Doe","medicalId":"MED123","prescriptionLimitGrams":45}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
		rec := httptest.NewRecorder()

		UpsertPatient(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.upserted == nil || stub.upserted.ID == nil || *stub.upserted.ID != id {
			t.Fatalf("expected id carried through, got %+v", stub.upserted)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		body := `{"id":"nope","name":"John Doe","medicalId":"MED123","prescriptionLimitGrams":30}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
		rec := httptest.NewRecorder()

		UpsertPatient(&stubPatientService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		body := `{"name":"John Doe"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
		rec := httptest.NewRecorder()

		UpsertPatient(&stubPatientService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestListPatients(t *testing.T) {
	logg := testLogger()
	stub := &stubPatientService{patients: []models.Patient{
		{ID: uuid.New(), Name: "John Doe", MedicalID: "MED123", PrescriptionLimitGrams: 30},
		{ID: uuid.New(), Name: "Jane Smith", MedicalID: "MED456", PrescriptionLimitGrams: 50},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	rec := httptest.NewRecorder()
	ListPatients(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data []patientResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(envelope.Data))
	}
}
