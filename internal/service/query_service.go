package service

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"darf/internal/domain"
	"darf/internal/logger"
	"darf/internal/metrics"
	"darf/internal/port"
)

const (
	defaultAutocompleteSize = 10
	maxAutocompleteSize     = 50
)

// FilterCriteria holds the optional search criteria. Period (YYYY-MM) fills the
// invoice year and month only when neither is given.
type FilterCriteria struct {
	PayerTaxID     *string
	Status         *domain.RecordStatus
	OrgUnit        *domain.OrgUnit
	DocumentNumber *string
	InvoiceNumber  *int
	FiscalCode     *string
	IncomeNature   *string
	InvoiceYear    *int
	InvoiceMonth   *int
	PaymentYear    *int
	PaymentMonth   *int
	Period         *string
}

// AutocompleteRequest asks for document numbers starting with Term.
// Limit is the legacy name of Size and is used only when Size is absent.
type AutocompleteRequest struct {
	Term    string
	OrgUnit *domain.OrgUnit
	Page    int
	Size    *int
	Limit   *int
}

// QueryService provides filtered retrieval and document-number lookups.
type QueryService interface {
	Filter(ctx context.Context, criteria FilterCriteria, page domain.PageRequest) (*domain.RecordPage, error)
	FindByDocumentNumber(ctx context.Context, documentNumber string, hint *domain.OrgUnit) (*domain.FiscalRecord, error)
	Autocomplete(ctx context.Context, req AutocompleteRequest) (*domain.RecordPage, error)
	List(ctx context.Context, page domain.PageRequest) (*domain.RecordPage, error)
	ListByStatus(ctx context.Context, status domain.RecordStatus, page domain.PageRequest) (*domain.RecordPage, error)
	PayersWithPayments(ctx context.Context, period string, orgUnit *domain.OrgUnit, page domain.PageRequest) (*domain.PayerPage, error)
}

type queryService struct {
	store   port.RecordStore
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewQueryService creates a new QueryService.
func NewQueryService(store port.RecordStore, m *metrics.Metrics, log *zap.Logger) QueryService {
	return &queryService{store: store, metrics: m, log: logger.OrNop(log)}
}

func (s *queryService) Filter(ctx context.Context, criteria FilterCriteria, page domain.PageRequest) (*domain.RecordPage, error) {
	filter, err := BuildFilter(criteria)
	if err != nil {
		return nil, err
	}

	result, err := s.store.FindPage(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		s.metrics.IncEmptyQuery("filter")
		return nil, &domain.NoMatchError{Criteria: filter.Describe()}
	}
	return result, nil
}

func (s *queryService) FindByDocumentNumber(ctx context.Context, documentNumber string, hint *domain.OrgUnit) (*domain.FiscalRecord, error) {
	number := domain.NormalizeDocumentNumber(documentNumber)
	if number == "" {
		return nil, &domain.FilterError{Field: "document_number", Reason: "must not be blank"}
	}

	matches, err := s.store.FindAllByDocumentNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	lookup := domain.ResolveDocumentLookup(matches, hint)
	if err := lookup.Err(number, hint); err != nil {
		if lookup.Kind == domain.LookupAmbiguous {
			s.log.Warn("queryService.FindByDocumentNumber: ambiguous document number",
				zap.String("document_number", number),
				zap.Int("matches", len(lookup.Candidates)))
		}
		return nil, err
	}
	return lookup.Record, nil
}

func (s *queryService) Autocomplete(ctx context.Context, req AutocompleteRequest) (*domain.RecordPage, error) {
	term := domain.NormalizeDocumentNumber(req.Term)
	if term == "" {
		return nil, &domain.FilterError{Field: "term", Reason: "must not be blank"}
	}

	size := resolveAutocompleteSize(req.Size, req.Limit)
	pageNo := req.Page
	if pageNo < 0 {
		pageNo = 0
	}
	if pageNo > math.MaxInt32/size {
		return nil, &domain.FilterError{Field: "page", Value: req.Page, Reason: "is too large"}
	}

	filter := domain.RecordFilter{DocumentNumberPrefix: &term, OrgUnit: req.OrgUnit}
	result, err := s.store.FindPage(ctx, filter, domain.PageRequest{
		Offset: pageNo * size,
		Limit:  size,
		Sort:   domain.SortDocumentNumberAsc,
	})
	if err != nil {
		return nil, err
	}
	if result.Records == nil {
		result.Records = []domain.FiscalRecord{}
	}
	return result, nil
}

func (s *queryService) List(ctx context.Context, page domain.PageRequest) (*domain.RecordPage, error) {
	page.Sort = domain.SortCreatedDesc
	result, err := s.store.FindPage(ctx, domain.RecordFilter{}, page)
	if err != nil {
		return nil, err
	}
	if result.Records == nil {
		result.Records = []domain.FiscalRecord{}
	}
	return result, nil
}

func (s *queryService) ListByStatus(ctx context.Context, status domain.RecordStatus, page domain.PageRequest) (*domain.RecordPage, error) {
	filter := domain.RecordFilter{Status: &status}
	result, err := s.store.FindPage(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		s.metrics.IncEmptyQuery("list_by_status")
		return nil, &domain.NoMatchError{Criteria: filter.Describe()}
	}
	return result, nil
}

func (s *queryService) PayersWithPayments(ctx context.Context, period string, orgUnit *domain.OrgUnit, page domain.PageRequest) (*domain.PayerPage, error) {
	year, month, err := parsePeriod("period", period)
	if err != nil {
		return nil, err
	}

	paid := domain.StatusPaid
	filter := domain.RecordFilter{
		Status:       &paid,
		OrgUnit:      orgUnit,
		PaymentYear:  &year,
		PaymentMonth: &month,
	}
	payers, total, err := s.store.FindDistinctPayers(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if len(payers) == 0 {
		s.metrics.IncEmptyQuery("payers_with_payments")
		return nil, &domain.NoMatchError{Criteria: filter.Describe()}
	}
	return &domain.PayerPage{PayerTaxIDs: payers, Total: total, Offset: page.Offset, Limit: page.Limit}, nil
}

// BuildFilter validates criteria and translates them into a store predicate.
// Nothing is read from the store when validation fails.
func BuildFilter(c FilterCriteria) (domain.RecordFilter, error) {
	var f domain.RecordFilter
	var err error

	if f.PayerTaxID, err = nonBlank("payer_tax_id", c.PayerTaxID); err != nil {
		return f, err
	}
	if f.PayerTaxID != nil {
		p := domain.NormalizePayerTaxID(*f.PayerTaxID)
		f.PayerTaxID = &p
	}
	if f.FiscalCode, err = nonBlank("fiscal_code", c.FiscalCode); err != nil {
		return f, err
	}
	if f.IncomeNature, err = nonBlank("income_nature", c.IncomeNature); err != nil {
		return f, err
	}
	if f.DocumentNumber, err = nonBlank("document_number", c.DocumentNumber); err != nil {
		return f, err
	}
	if f.DocumentNumber != nil {
		n := domain.NormalizeDocumentNumber(*f.DocumentNumber)
		f.DocumentNumber = &n
	}
	if c.InvoiceNumber != nil && *c.InvoiceNumber <= 0 {
		return f, &domain.FilterError{Field: "invoice_number", Value: *c.InvoiceNumber, Reason: "must be greater than zero"}
	}
	f.InvoiceNumber = c.InvoiceNumber
	f.Status = c.Status
	f.OrgUnit = c.OrgUnit

	f.InvoiceYear, f.InvoiceMonth = c.InvoiceYear, c.InvoiceMonth
	if c.Period != nil && strings.TrimSpace(*c.Period) != "" && c.InvoiceYear == nil && c.InvoiceMonth == nil {
		year, month, perr := parsePeriod("period", *c.Period)
		if perr != nil {
			return f, perr
		}
		f.InvoiceYear, f.InvoiceMonth = intPtr(year), intPtr(month)
	}
	f.PaymentYear, f.PaymentMonth = c.PaymentYear, c.PaymentMonth

	if err := checkPeriodRanges(f.InvoiceYear, f.InvoiceMonth, f.PaymentYear, f.PaymentMonth); err != nil {
		return f, err
	}
	return f, nil
}

func resolveAutocompleteSize(size, limit *int) int {
	n := defaultAutocompleteSize
	switch {
	case size != nil:
		n = *size
	case limit != nil:
		n = *limit
	}
	if n <= 0 {
		n = defaultAutocompleteSize
	}
	if n > maxAutocompleteSize {
		n = maxAutocompleteSize
	}
	return n
}
