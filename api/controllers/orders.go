package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verdantcare/dispensary-backend/api/responses"
	"github.com/verdantcare/dispensary-backend/api/validators"
	ordersvc "github.com/verdantcare/dispensary-backend/internal/orders"
	"github.com/verdantcare/dispensary-backend/pkg/db/models"
	"github.com/verdantcare/dispensary-backend/pkg/enums"
	pkgerrors "github.com/verdantcare/dispensary-backend/pkg/errors"
	"github.com/verdantcare/dispensary-backend/pkg/logger"
)

type orderResponse struct {
	ID            uuid.UUID `json:"id"`
	PatientID     uuid.UUID `json:"patientId"`
	ProductID     uuid.UUID `json:"productId"`
	QuantityGrams int       `json:"quantityGrams"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toOrderResponse(order models.Order) orderResponse {
	return orderResponse{
		ID:            order.ID,
		PatientID:     order.PatientID,
		ProductID:     order.ProductID,
		QuantityGrams: order.QuantityGrams,
		Status:        order.Status.String(),
		Notes:         order.Notes,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

type createOrderRequest struct {
	PatientID     string  `json:"patientId" validate:"required,uuid"`
	ProductID     string  `json:"productId" validate:"required,uuid"`
	QuantityGrams int     `json:"quantityGrams" validate:"required,gt=0"`
	Notes         *string `json:"notes,omitempty"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListOrders returns all orders, newest first.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]orderResponse, 0, len(items))
		for _, item := range items {
			payload = append(payload, toOrderResponse(item))
		}
		responses.WriteSuccess(w, payload)
	}
}

// CreateOrder validates and persists a new order, decrementing product stock
// in the same transaction.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patientID, err := uuid.Parse(payload.PatientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid patient id"))
			return
		}
		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		order, err := svc.Create(r.Context(), ordersvc.CreateInput{
			PatientID:     patientID,
			ProductID:     productID,
			QuantityGrams: payload.QuantityGrams,
			Notes:         payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, order.ID.String())
			logg.Info(ctx, "order.created")
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toOrderResponse(*order))
	}
}

// UpdateOrderStatus moves an order along its lifecycle.
func UpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
			return
		}

		if err := svc.UpdateStatus(r.Context(), orderID, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, orderID.String())
			logg.Info(ctx, "order.status_updated")
		}

		responses.WriteSuccess(w, map[string]string{"status": status.String()})
	}
}
