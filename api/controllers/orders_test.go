package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	ordersvc "github.com/verdantcare/dispensary-backend/internal/orders"
	"github.com/verdantcare/dispensary-backend/pkg/db/models"
	"github.com/verdantcare/dispensary-backend/pkg/enums"
	pkgerrors "github.com/verdantcare/dispensary-backend/pkg/errors"
	"github.com/verdantcare/dispensary-backend/pkg/logger"
)

type stubOrderService struct {
	created      *models.Order
	createErr    error
	updateErr    error
	updateCalled bool
	updateStatus enums.OrderStatus
	orders       []models.Order
	stats        *ordersvc.DashboardStats
}

func (s *stubOrderService) Create(ctx context.Context, input ordersvc.CreateInput) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created == nil {
		s.created = &models.Order{
			ID:            uuid.New(),
			PatientID:     input.PatientID,
			ProductID:     input.ProductID,
			QuantityGrams: input.QuantityGrams,
			Status:        enums.OrderStatusPending,
			Notes:         input.Notes,
			CreatedAt:     time.Now().UTC(),
		}
	}
	return s.created, nil
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	s.updateCalled = true
	s.updateStatus = status
	return s.updateErr
}

func (s *stubOrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders, nil
}

func (s *stubOrderService) Stats(ctx context.Context) (*ordersvc.DashboardStats, error) {
	return s.stats, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func TestCreateOrder(t *testing.T) {
	logg := testLogger()
	patientID := uuid.New()
	productID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubOrderService{}
		body := `{"patientId":"` + patientID.String() + `","productId":"` + productID.String() + `","quantityGrams":5}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		CreateOrder(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var envelope struct {
			Data struct {
				ID            string `json:"id"`
				PatientID     string `json:"patientId"`
				QuantityGrams int    `json:"quantityGrams"`
				Status        string `json:"status"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if envelope.Data.Status != "pending" {
			t.Fatalf("expected pending status, got %q", envelope.Data.Status)
		}
		if envelope.Data.PatientID != patientID.String() {
			t.Fatalf("unexpected patient id %q", envelope.Data.PatientID)
		}
		if envelope.Data.QuantityGrams != 5 {
			t.Fatalf("unexpected quantity %d", envelope.Data.QuantityGrams)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		body := `{"patientId":"` + patientID.String() + `","productId":"` + productID.String() + `","quantityGrams":5,"priority":"high"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		CreateOrder(&stubOrderService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		body := `{"patientId":"` + patientID.String() + `","productId":"` + productID.String() + `","quantityGrams":0}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		CreateOrder(&stubOrderService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("maps conflict errors", func(t *testing.T) {
		stub := &stubOrderService{createErr: pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock")}
		body := `{"patientId":"` + patientID.String() + `","productId":"` + productID.String() + `","quantityGrams":5}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		CreateOrder(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "insufficient stock") {
			t.Fatalf("expected message in body, got %s", rec.Body.String())
		}
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	logg := testLogger()
	orderID := uuid.New()

	makeRequest := func(svc *stubOrderService, id, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+id+"/status", strings.NewReader(body))
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("orderId", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		UpdateOrderStatus(svc, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		stub := &stubOrderService{}
		rec := makeRequest(stub, orderID.String(), `{"status":"approved"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !stub.updateCalled || stub.updateStatus != enums.OrderStatusApproved {
			t.Fatalf("expected approved update, got %+v", stub)
		}
	})

	t.Run("invalid order id", func(t *testing.T) {
		rec := makeRequest(&stubOrderService{}, "not-a-uuid", `{"status":"approved"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		stub := &stubOrderService{}
		rec := makeRequest(stub, orderID.String(), `{"status":"shipped"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.updateCalled {
			t.Fatal("unknown status must not reach the service")
		}
	})

	t.Run("invalid transition", func(t *testing.T) {
		stub := &stubOrderService{updateErr: pkgerrors.New(pkgerrors.CodeStateConflict, "invalid status transition")}
		rec := makeRequest(stub, orderID.String(), `{"status":"approved"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		stub := &stubOrderService{updateErr: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}
		rec := makeRequest(stub, orderID.String(), `{"status":"approved"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestListOrders(t *testing.T) {
	logg := testLogger()
	stub := &stubOrderService{orders: []models.Order{
		{ID: uuid.New(), PatientID: uuid.New(), ProductID: uuid.New(), QuantityGrams: 5, Status: enums.OrderStatusPending, CreatedAt: time.Now().UTC()},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	ListOrders(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data []orderResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected 1 order, got %d", len(envelope.Data))
	}
}
