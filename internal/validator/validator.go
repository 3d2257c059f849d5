package validator

import (
	"context"

	"github.com/google/uuid"

	"darf/internal/domain"
	"darf/internal/port"
)

// rule is one step of record validation. A non-nil error stops the chain.
type rule func(ctx context.Context, rec *domain.FiscalRecord, excludeID *uuid.UUID) error

// RecordValidator gates creation and update of fiscal records.
type RecordValidator struct {
	rules []rule
}

// NewRecordValidator builds the validator with its uniqueness probes backed by store.
func NewRecordValidator(store port.RecordStore) *RecordValidator {
	return &RecordValidator{rules: recordRules(store)}
}

// Validate runs every rule in order and returns the first failure. When the
// document-number rule passes, rec.DocumentNumber is normalized in place.
// excludeID is the record's own id on update and nil on create.
func (v *RecordValidator) Validate(ctx context.Context, rec *domain.FiscalRecord, excludeID *uuid.UUID) error {
	for _, r := range v.rules {
		if err := r(ctx, rec, excludeID); err != nil {
			return err
		}
	}
	return nil
}
