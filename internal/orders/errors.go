package orders

import (
	pkgerrors "github.com/verdantcare/dispensary-backend/pkg/errors"
)

// Validation failure taxonomy. Each constructor returns a typed error the API
// layer translates into a rejected operation; none of them mutates state.
func errProductNotFound() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func errInsufficientStock() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock")
}

func errPatientNotFound() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "patient not found")
}

func errPrescriptionLimitExceeded() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeConflict, "exceeds monthly prescription limit")
}

func errOrderNotFound() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func errInvalidTransition(from, to string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "invalid status transition").
		WithDetails(map[string]any{"from": from, "to": to})
}
