package port

import (
	"context"

	"github.com/google/uuid"

	"darf/internal/domain"
)

// RecordStore persists fiscal records. Implementations must enforce the
// (document number, org unit) and (payer, invoice number, org unit) uniqueness
// at write time so that racing creates cannot both succeed.
type RecordStore interface {
	// ExistsInvoiceTriple reports whether another record holds the invoice triple.
	ExistsInvoiceTriple(ctx context.Context, payerTaxID string, invoiceNumber int,
		orgUnit domain.OrgUnit, excludeID *uuid.UUID) (bool, error)
	// ExistsDocumentNumber compares document numbers case-insensitively.
	ExistsDocumentNumber(ctx context.Context, documentNumber string,
		orgUnit domain.OrgUnit, excludeID *uuid.UUID) (bool, error)
	FindAllByDocumentNumber(ctx context.Context, documentNumber string) ([]domain.FiscalRecord, error)
	FindPage(ctx context.Context, filter domain.RecordFilter, page domain.PageRequest) (*domain.RecordPage, error)
	FindAggregates(ctx context.Context, filter domain.RecordFilter) (*domain.Totals, error)
	FindDistinctPayers(ctx context.Context, filter domain.RecordFilter, page domain.PageRequest) ([]string, int, error)
	// Save inserts rec when its ID is nil and updates it otherwise.
	Save(ctx context.Context, rec *domain.FiscalRecord) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FiscalRecord, error)
}
