package orders

import (
	"testing"

	"github.com/google/uuid"

	"github.com/verdantcare/dispensary-backend/pkg/db/models"
	pkgerrors "github.com/verdantcare/dispensary-backend/pkg/errors"
)

func testProduct(stock int) *models.Product {
	return &models.Product{ID: uuid.New(), Name: "Blue Dream", StockGrams: stock}
}

func testPatient(limit int) *models.Patient {
	return &models.Patient{ID: uuid.New(), Name: "John Doe", MedicalID: "MED123", PrescriptionLimitGrams: limit}
}

func TestValidateAdmissible(t *testing.T) {
	if err := Validate(5, testProduct(10), testPatient(30), 0); err != nil {
		t.Fatalf("expected admissible order, got %v", err)
	}
}

func TestValidateQuantityMustBePositive(t *testing.T) {
	for _, qty := range []int{0, -3} {
		err := Validate(qty, testProduct(10), testPatient(30), 0)
		assertCode(t, err, pkgerrors.CodeValidation)
	}
}

func TestValidateProductNotFound(t *testing.T) {
	err := Validate(5, nil, testPatient(30), 0)
	assertCode(t, err, pkgerrors.CodeNotFound)
	if msg := pkgerrors.As(err).Message(); msg != "product not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestValidateInsufficientStock(t *testing.T) {
	err := Validate(11, testProduct(10), testPatient(30), 0)
	assertCode(t, err, pkgerrors.CodeConflict)
	if msg := pkgerrors.As(err).Message(); msg != "insufficient stock" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestValidateExactStockAllowed(t *testing.T) {
	if err := Validate(10, testProduct(10), testPatient(30), 0); err != nil {
		t.Fatalf("quantity equal to stock should pass, got %v", err)
	}
}

func TestValidatePatientNotFound(t *testing.T) {
	err := Validate(5, testProduct(10), nil, 0)
	assertCode(t, err, pkgerrors.CodeNotFound)
	if msg := pkgerrors.As(err).Message(); msg != "patient not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestValidatePrescriptionLimit(t *testing.T) {
	// 25 consumed + 5 requested == 30 limit, exactly on the boundary
	if err := Validate(5, testProduct(100), testPatient(30), 25); err != nil {
		t.Fatalf("consumption landing on the limit should pass, got %v", err)
	}

	err := Validate(6, testProduct(100), testPatient(30), 25)
	assertCode(t, err, pkgerrors.CodeConflict)
	if msg := pkgerrors.As(err).Message(); msg != "exceeds monthly prescription limit" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestValidateStockCheckedBeforePatient(t *testing.T) {
	// both stock and patient would fail; stock wins
	err := Validate(11, testProduct(10), nil, 0)
	if msg := pkgerrors.As(err).Message(); msg != "insufficient stock" {
		t.Fatalf("expected stock failure first, got %q", msg)
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
}
