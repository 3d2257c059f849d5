package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"darf/internal/clock"
	"darf/internal/domain"
	"darf/internal/logger"
	"darf/internal/metrics"
	"darf/internal/port"
	"darf/internal/validator"
	"darf/internal/withholding"
)

// RecordInput carries the authoritative fields of a fiscal record. Rates,
// withheld amounts, net amount and status are always derived.
type RecordInput struct {
	OrgUnit        domain.OrgUnit
	DocumentNumber string
	PayerTaxID     string
	InvoiceNumber  int
	InvoiceDate    time.Time
	PaymentDate    *time.Time
	IncomeNature   string
	// FiscalCode is optional; when empty it is taken from the income-nature catalog.
	FiscalCode  string
	GrossAmount decimal.Decimal
}

// CheckShape rejects inputs whose fields are malformed regardless of stored
// state: the document number pattern, the payer tax id check digits and a
// positive invoice number. Callers at the boundary run it before Create/Update.
func (in *RecordInput) CheckShape() error {
	if !domain.ValidDocumentNumber(in.DocumentNumber) {
		return fmt.Errorf("invalid 'document_number' %q: must be 3 digits, 2 letters and 6 digits", in.DocumentNumber)
	}
	if !domain.ValidPayerTaxID(in.PayerTaxID) {
		return fmt.Errorf("invalid 'payer_tax_id' %q: must be a valid CNPJ or CPF", in.PayerTaxID)
	}
	if in.InvoiceNumber <= 0 {
		return fmt.Errorf("invalid 'invoice_number' %d: must be greater than zero", in.InvoiceNumber)
	}
	return nil
}

// RecordService runs the create/update pipeline: validate, calculate, resolve status, persist.
type RecordService interface {
	Create(ctx context.Context, input RecordInput) (*domain.FiscalRecord, error)
	Update(ctx context.Context, id uuid.UUID, input RecordInput) (*domain.FiscalRecord, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*domain.FiscalRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.FiscalRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type recordService struct {
	store     port.RecordStore
	validator *validator.RecordValidator
	cache     port.AggregateCache
	clock     clock.Clock
	metrics   *metrics.Metrics
	log       *zap.Logger
}

// NewRecordService creates a new RecordService. cache, m and log may be nil.
func NewRecordService(
	store port.RecordStore,
	cache port.AggregateCache,
	clk clock.Clock,
	m *metrics.Metrics,
	log *zap.Logger,
) RecordService {
	if clk == nil {
		clk = clock.Real()
	}
	return &recordService{
		store:     store,
		validator: validator.NewRecordValidator(store),
		cache:     cache,
		clock:     clk,
		metrics:   m,
		log:       logger.OrNop(log),
	}
}

func (s *recordService) Create(ctx context.Context, input RecordInput) (*domain.FiscalRecord, error) {
	rec, err := buildRecord(input)
	if err != nil {
		s.reject("recordService.Create", err)
		return nil, err
	}
	if err := s.persist(ctx, rec, nil); err != nil {
		s.reject("recordService.Create", err)
		return nil, err
	}

	s.metrics.IncCreated()
	s.log.Info("recordService.Create: record created",
		zap.String("record_id", rec.ID.String()),
		zap.String("document_number", rec.DocumentNumber),
		zap.String("org_unit", string(rec.OrgUnit)))
	return rec, nil
}

func (s *recordService) Update(ctx context.Context, id uuid.UUID, input RecordInput) (*domain.FiscalRecord, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rec, err := buildRecord(input)
	if err != nil {
		s.reject("recordService.Update", err)
		return nil, err
	}
	rec.ID = existing.ID
	rec.CreatedAt = existing.CreatedAt

	if err := s.persist(ctx, rec, &rec.ID); err != nil {
		s.reject("recordService.Update", err)
		return nil, err
	}

	s.metrics.IncUpdated()
	s.log.Info("recordService.Update: record updated", zap.String("record_id", rec.ID.String()))
	return rec, nil
}

func (s *recordService) MarkPaid(ctx context.Context, id uuid.UUID) (*domain.FiscalRecord, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clock)
	rec.PaymentDate = &today
	if err := s.persist(ctx, rec, &rec.ID); err != nil {
		s.reject("recordService.MarkPaid", err)
		return nil, err
	}

	s.metrics.IncUpdated()
	s.log.Info("recordService.MarkPaid: record paid",
		zap.String("record_id", rec.ID.String()),
		zap.Time("payment_date", today))
	return rec, nil
}

func (s *recordService) Get(ctx context.Context, id uuid.UUID) (*domain.FiscalRecord, error) {
	return s.store.FindByID(ctx, id)
}

func (s *recordService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.metrics.IncDeleted()
	s.log.Info("recordService.Delete: record deleted", zap.String("record_id", id.String()))
	return nil
}

// persist runs the pipeline on rec and saves it. On any failure nothing is written.
func (s *recordService) persist(ctx context.Context, rec *domain.FiscalRecord, excludeID *uuid.UUID) error {
	if err := s.validator.Validate(ctx, rec, excludeID); err != nil {
		return err
	}
	if err := withholding.Apply(&rec.Withholding); err != nil {
		return err
	}
	rec.Status = domain.ResolveStatus(rec.PaymentDate)

	if err := s.store.Save(ctx, rec); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *recordService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("recordService: aggregate cache invalidation failed", zap.Error(err))
	}
}

func (s *recordService) reject(op string, err error) {
	reason := rejectionReason(err)
	if reason == "" {
		return
	}
	s.metrics.IncRejected(reason)
	s.log.Info(op+": record rejected", zap.String("reason", reason), zap.Error(err))
}

// buildRecord assembles a candidate from input. Dates are truncated to the day.
func buildRecord(input RecordInput) (*domain.FiscalRecord, error) {
	if !input.OrgUnit.Valid() {
		return nil, &domain.OrgUnitError{Value: string(input.OrgUnit)}
	}
	fiscalCode, err := domain.ResolveFiscalCode(input.IncomeNature, input.FiscalCode)
	if err != nil {
		return nil, err
	}

	rec := &domain.FiscalRecord{
		OrgUnit:        input.OrgUnit,
		DocumentNumber: input.DocumentNumber,
		PayerTaxID:     input.PayerTaxID,
		InvoiceNumber:  input.InvoiceNumber,
		InvoiceDate:    truncateDay(input.InvoiceDate),
		IncomeNature:   input.IncomeNature,
		Withholding: domain.WithholdingDetail{
			FiscalCode:  fiscalCode,
			GrossAmount: input.GrossAmount,
		},
	}
	if input.PaymentDate != nil {
		p := truncateDay(*input.PaymentDate)
		rec.PaymentDate = &p
	}
	return rec, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// rejectionReason labels business rejections; infrastructure errors return "".
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidGrossAmount):
		return "invalid_gross_amount"
	case errors.Is(err, domain.ErrInvalidPaymentDate):
		return "invalid_payment_date"
	case errors.Is(err, domain.ErrInvalidOrgUnit):
		return "invalid_org_unit"
	case errors.Is(err, domain.ErrDuplicateInvoice):
		return "duplicate_invoice"
	case errors.Is(err, domain.ErrDuplicateDocumentNumber):
		return "duplicate_document_number"
	case errors.Is(err, domain.ErrInvalidFiscalCode), errors.Is(err, domain.ErrIncomeNatureMismatch):
		return "invalid_fiscal_code"
	case errors.Is(err, domain.ErrInvalidIncomeNature):
		return "invalid_income_nature"
	}
	return ""
}

