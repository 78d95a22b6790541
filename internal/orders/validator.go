package orders

import (
	"github.com/verdantcare/dispensary-backend/pkg/db/models"
	pkgerrors "github.com/verdantcare/dispensary-backend/pkg/errors"
)

// Validate decides whether a prospective order is admissible against a
// snapshot of state. It is a pure predicate: no side effects, no clock, no
// persistence. consumedThisMonth is the sum of the patient's order quantities
// within the current UTC calendar month, excluding the order being validated.
//
// Boundaries: quantity equal to remaining stock is allowed; consumption that
// lands exactly on the prescription limit is allowed, strictly exceeding it
// is not.
func Validate(quantityGrams int, product *models.Product, patient *models.Patient, consumedThisMonth int) error {
	if quantityGrams <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if product == nil {
		return errProductNotFound()
	}
	if product.StockGrams < quantityGrams {
		return errInsufficientStock()
	}
	if patient == nil {
		return errPatientNotFound()
	}
	if consumedThisMonth+quantityGrams > patient.PrescriptionLimitGrams {
		return errPrescriptionLimitExceeded()
	}
	return nil
}
