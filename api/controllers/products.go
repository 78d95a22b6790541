package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantcare/dispensary-backend/api/responses"
	productsvc "github.com/verdantcare/dispensary-backend/internal/products"
	"github.com/verdantcare/dispensary-backend/pkg/db/models"
	pkgerrors "github.com/verdantcare/dispensary-backend/pkg/errors"
	"github.com/verdantcare/dispensary-backend/pkg/logger"
)

type productResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	THCPercent   float64         `json:"thcPercent"`
	CBDPercent   float64         `json:"cbdPercent"`
	StockGrams   int             `json:"stockGrams"`
	PricePerGram decimal.Decimal `json:"pricePerGram"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func toProductResponse(product models.Product) productResponse {
	return productResponse{
		ID:           product.ID,
		Name:         product.Name,
		THCPercent:   product.THCPercent,
		CBDPercent:   product.CBDPercent,
		StockGrams:   product.StockGrams,
		PricePerGram: product.PricePerGram,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}

// ListProducts returns the full catalog.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]productResponse, 0, len(items))
		for _, item := range items {
			payload = append(payload, toProductResponse(item))
		}
		responses.WriteSuccess(w, payload)
	}
}
