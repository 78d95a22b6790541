package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantcare/dispensary-backend/internal/patients"
	"github.com/verdantcare/dispensary-backend/internal/products"
	"github.com/verdantcare/dispensary-backend/pkg/db/models"
	"github.com/verdantcare/dispensary-backend/pkg/enums"
	pkgerrors "github.com/verdantcare/dispensary-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateInput captures a prospective order before validation.
type CreateInput struct {
	PatientID     uuid.UUID
	ProductID     uuid.UUID
	QuantityGrams int
	Notes         *string
}

// Service defines order-level operations beyond repository reads.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
	List(ctx context.Context) ([]models.Order, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

type service struct {
	repo     Repository
	products products.Repository
	patients patients.Repository
	tx       txRunner
	now      func() time.Time
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, productsRepo products.Repository, patientsRepo patients.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if patientsRepo == nil {
		return nil, fmt.Errorf("patients repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     repo,
		products: productsRepo,
		patients: patientsRepo,
		tx:       tx,
		now:      time.Now,
	}, nil
}

// Create validates the prospective order against a fresh snapshot and, when
// admissible, appends the order and decrements stock in the same transaction.
// A failure at any step rolls back both writes.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if input.PatientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "patient id required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.QuantityGrams <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		productsRepo := s.products.WithTx(tx)
		patientsRepo := s.patients.WithTx(tx)

		product, err := productsRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errProductNotFound()
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		patient, err := patientsRepo.FindByID(ctx, input.PatientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errPatientNotFound()
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load patient")
		}

		now := s.now().UTC()
		consumed, err := repo.SumQuantityForPatientInMonth(ctx, patient.ID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum monthly consumption")
		}

		if err := Validate(input.QuantityGrams, product, patient, consumed); err != nil {
			return err
		}

		order := &models.Order{
			ID:            uuid.New(),
			PatientID:     patient.ID,
			ProductID:     product.ID,
			QuantityGrams: input.QuantityGrams,
			Status:        enums.OrderStatusPending,
			Notes:         input.Notes,
			CreatedAt:     now,
		}
		if _, err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if err := productsRepo.DecrementStock(ctx, product.ID, input.QuantityGrams); err != nil {
			if errors.Is(err, products.ErrStockConflict) {
				return errInsufficientStock()
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus moves an order along the transition table. Setting the status
// it already has is a no-op; anything outside the table is rejected.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errOrderNotFound()
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		if order.Status == status {
			return nil
		}
		if !order.Status.CanTransitionTo(status) {
			return errInvalidTransition(order.Status.String(), status.String())
		}

		if err := repo.UpdateStatus(ctx, order.ID, status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		return nil
	})
}

func (s *service) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

// Stats aggregates order counts and revenue per UTC day for the dashboard.
func (s *service) Stats(ctx context.Context) (*DashboardStats, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	catalog, err := s.products.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return BuildStats(orders, catalog), nil
}
