package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/verdantcare/dispensary-backend/pkg/db/models"
	"github.com/verdantcare/dispensary-backend/pkg/enums"
)

// Repository defines persistence operations for order records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Order, error)
	SumQuantityForPatientInMonth(ctx context.Context, patientID uuid.UUID, at time.Time) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}
