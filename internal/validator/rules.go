package validator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"darf/internal/domain"
	"darf/internal/port"
)

// recordRules returns the checks in evaluation order: gross amount, invoice
// uniqueness, document-number uniqueness, payment-date ordering.
func recordRules(store port.RecordStore) []rule {
	return []rule{
		checkGrossAmount,
		checkInvoiceUnique(store),
		checkDocumentNumberUnique(store),
		checkPaymentDate,
	}
}

func checkGrossAmount(_ context.Context, rec *domain.FiscalRecord, _ *uuid.UUID) error {
	gross := rec.Withholding.GrossAmount
	if !gross.IsPositive() {
		return fmt.Errorf("%w: must be greater than zero, got %s", domain.ErrInvalidGrossAmount, gross.String())
	}
	if !gross.Equal(gross.Truncate(2)) {
		return fmt.Errorf("%w: at most 2 decimal places, got %s", domain.ErrInvalidGrossAmount, gross.String())
	}
	return nil
}

func checkInvoiceUnique(store port.RecordStore) rule {
	return func(ctx context.Context, rec *domain.FiscalRecord, excludeID *uuid.UUID) error {
		exists, err := store.ExistsInvoiceTriple(ctx, rec.PayerTaxID, rec.InvoiceNumber, rec.OrgUnit, excludeID)
		if err != nil {
			return fmt.Errorf("validator.checkInvoiceUnique: %w", err)
		}
		if exists {
			return &domain.DuplicateInvoiceError{
				PayerTaxID:    rec.PayerTaxID,
				InvoiceNumber: rec.InvoiceNumber,
				OrgUnit:       rec.OrgUnit,
			}
		}
		return nil
	}
}

func checkDocumentNumberUnique(store port.RecordStore) rule {
	return func(ctx context.Context, rec *domain.FiscalRecord, excludeID *uuid.UUID) error {
		normalized := domain.NormalizeDocumentNumber(rec.DocumentNumber)
		exists, err := store.ExistsDocumentNumber(ctx, normalized, rec.OrgUnit, excludeID)
		if err != nil {
			return fmt.Errorf("validator.checkDocumentNumberUnique: %w", err)
		}
		if exists {
			return &domain.DuplicateDocumentNumberError{DocumentNumber: normalized, OrgUnit: rec.OrgUnit}
		}
		rec.DocumentNumber = normalized
		return nil
	}
}

func checkPaymentDate(_ context.Context, rec *domain.FiscalRecord, _ *uuid.UUID) error {
	if rec.PaymentDate == nil {
		return nil
	}
	if rec.PaymentDate.Before(rec.InvoiceDate) {
		return &domain.PaymentDateError{
			InvoiceDate: rec.InvoiceDate.Format("2006-01-02"),
			PaymentDate: rec.PaymentDate.Format("2006-01-02"),
		}
	}
	return nil
}
