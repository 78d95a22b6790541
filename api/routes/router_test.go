package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	ordersvc "github.com/verdantcare/dispensary-backend/internal/orders"
	patientsvc "github.com/verdantcare/dispensary-backend/internal/patients"
	"github.com/verdantcare/dispensary-backend/pkg/config"
	"github.com/verdantcare/dispensary-backend/pkg/db/models"
	"github.com/verdantcare/dispensary-backend/pkg/enums"
	"github.com/verdantcare/dispensary-backend/pkg/logger"
	"github.com/verdantcare/dispensary-backend/pkg/metrics"
)

type fakePatients struct{}

func (fakePatients) List(ctx context.Context) ([]models.Patient, error) { return nil, nil }

func (fakePatients) Upsert(ctx context.Context, input patientsvc.UpsertInput) (*models.Patient, error) {
	return &models.Patient{
		ID:                     uuid.New(),
		Name:                   input.Name,
		MedicalID:              input.MedicalID,
		PrescriptionLimitGrams: input.PrescriptionLimitGrams,
	}, nil
}

type fakeOrders struct{}

func (fakeOrders) Create(ctx context.Context, input ordersvc.CreateInput) (*models.Order, error) {
	return &models.Order{ID: uuid.New(), Status: enums.OrderStatusPending}, nil
}

func (fakeOrders) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	return nil
}

func (fakeOrders) List(ctx context.Context) ([]models.Order, error) { return nil, nil }

func (fakeOrders) Stats(ctx context.Context) (*ordersvc.DashboardStats, error) {
	return &ordersvc.DashboardStats{}, nil
}

type fakeProducts struct{}

func (fakeProducts) List(ctx context.Context) ([]models.Product, error) { return nil, nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	registry := prometheus.NewRegistry()
	return NewRouter(Dependencies{
		Config:      &config.Config{App: config.AppConfig{Env: "dev"}},
		Logger:      logg,
		Registry:    registry,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Products:    fakeProducts{},
		Patients:    fakePatients{},
		Orders:      fakeOrders{},
	})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope map[string]map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope["data"]["status"] != "live" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterPatientUpsertRequiresAdmin(t *testing.T) {
	router := newTestRouter(t)
	body := `{"name":"John Doe","medicalId":"MED123","prescriptionLimitGrams":30}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("staff upsert should be forbidden, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
	req.Header.Set("X-Actor-Role", "admin")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin upsert should pass, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterOrderCreateOpenToStaff(t *testing.T) {
	router := newTestRouter(t)
	body := `{"patientId":"` + uuid.NewString() + `","productId":"` + uuid.NewString() + `","quantityGrams":5}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
