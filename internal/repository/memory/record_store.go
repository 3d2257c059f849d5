package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"darf/internal/domain"
	"darf/internal/port"
)

// RecordStore is an in-memory port.RecordStore. It enforces the same
// uniqueness constraints as the postgres schema.
type RecordStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]domain.FiscalRecord
	now     func() time.Time
}

var _ port.RecordStore = (*RecordStore)(nil)

// NewRecordStore creates an empty in-memory store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[uuid.UUID]domain.FiscalRecord),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func excluded(id uuid.UUID, excludeID *uuid.UUID) bool {
	return excludeID != nil && *excludeID == id
}

func (s *RecordStore) ExistsInvoiceTriple(_ context.Context, payerTaxID string, invoiceNumber int, orgUnit domain.OrgUnit, excludeID *uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.invoiceTaken(payerTaxID, invoiceNumber, orgUnit, excludeID), nil
}

func (s *RecordStore) ExistsDocumentNumber(_ context.Context, documentNumber string, orgUnit domain.OrgUnit, excludeID *uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documentNumberTaken(documentNumber, orgUnit, excludeID), nil
}

func (s *RecordStore) invoiceTaken(payerTaxID string, invoiceNumber int, orgUnit domain.OrgUnit, excludeID *uuid.UUID) bool {
	for id := range s.records {
		r := s.records[id]
		if excluded(id, excludeID) {
			continue
		}
		if r.PayerTaxID == payerTaxID && r.InvoiceNumber == invoiceNumber && r.OrgUnit == orgUnit {
			return true
		}
	}
	return false
}

func (s *RecordStore) documentNumberTaken(documentNumber string, orgUnit domain.OrgUnit, excludeID *uuid.UUID) bool {
	key := domain.NormalizeDocumentNumber(documentNumber)
	for id := range s.records {
		r := s.records[id]
		if excluded(id, excludeID) {
			continue
		}
		if r.OrgUnit == orgUnit && domain.NormalizeDocumentNumber(r.DocumentNumber) == key {
			return true
		}
	}
	return false
}

func (s *RecordStore) FindAllByDocumentNumber(_ context.Context, documentNumber string) ([]domain.FiscalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := domain.NormalizeDocumentNumber(documentNumber)
	var out []domain.FiscalRecord
	for id := range s.records {
		if domain.NormalizeDocumentNumber(s.records[id].DocumentNumber) == key {
			out = append(out, clone(s.records[id]))
		}
	}
	sortRecords(out, domain.SortCreatedDesc)
	return out, nil
}

func (s *RecordStore) FindPage(_ context.Context, filter domain.RecordFilter, page domain.PageRequest) (*domain.RecordPage, error) {
	matches := s.matching(&filter)
	sortRecords(matches, page.Sort)

	total := len(matches)
	start, end := bounds(total, page)
	return &domain.RecordPage{
		Records: matches[start:end],
		Total:   total,
		Offset:  page.Offset,
		Limit:   page.Limit,
	}, nil
}

func (s *RecordStore) FindAggregates(_ context.Context, filter domain.RecordFilter) (*domain.Totals, error) {
	totals := domain.ZeroTotals()
	for _, r := range s.matching(&filter) {
		totals.Add(&r)
	}
	return &totals, nil
}

func (s *RecordStore) FindDistinctPayers(_ context.Context, filter domain.RecordFilter, page domain.PageRequest) ([]string, int, error) {
	seen := make(map[string]bool)
	var payers []string
	for _, r := range s.matching(&filter) {
		if !seen[r.PayerTaxID] {
			seen[r.PayerTaxID] = true
			payers = append(payers, r.PayerTaxID)
		}
	}
	sort.Strings(payers)

	total := len(payers)
	start, end := bounds(total, page)
	return payers[start:end], total, nil
}

func (s *RecordStore) Save(_ context.Context, rec *domain.FiscalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var excludeID *uuid.UUID
	if rec.ID != uuid.Nil {
		existing, ok := s.records[rec.ID]
		if !ok {
			return &domain.RecordNotFoundError{ID: rec.ID}
		}
		excludeID = &rec.ID
		rec.CreatedAt = existing.CreatedAt
	}

	if s.invoiceTaken(rec.PayerTaxID, rec.InvoiceNumber, rec.OrgUnit, excludeID) {
		return &domain.DuplicateInvoiceError{PayerTaxID: rec.PayerTaxID, InvoiceNumber: rec.InvoiceNumber, OrgUnit: rec.OrgUnit}
	}
	if s.documentNumberTaken(rec.DocumentNumber, rec.OrgUnit, excludeID) {
		return &domain.DuplicateDocumentNumberError{DocumentNumber: domain.NormalizeDocumentNumber(rec.DocumentNumber), OrgUnit: rec.OrgUnit}
	}

	now := s.now()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	s.records[rec.ID] = clone(*rec)
	return nil
}

func (s *RecordStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return &domain.RecordNotFoundError{ID: id}
	}
	delete(s.records, id)
	return nil
}

func (s *RecordStore) FindByID(_ context.Context, id uuid.UUID) (*domain.FiscalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, &domain.RecordNotFoundError{ID: id}
	}
	out := clone(r)
	return &out, nil
}

func (s *RecordStore) matching(filter *domain.RecordFilter) []domain.FiscalRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.FiscalRecord
	for id := range s.records {
		r := s.records[id]
		if filter.Matches(&r) {
			out = append(out, clone(r))
		}
	}
	return out
}

func sortRecords(recs []domain.FiscalRecord, order domain.SortOrder) {
	sort.SliceStable(recs, func(i, j int) bool {
		if order == domain.SortDocumentNumberAsc {
			if recs[i].DocumentNumber != recs[j].DocumentNumber {
				return recs[i].DocumentNumber < recs[j].DocumentNumber
			}
			return recs[i].OrgUnit < recs[j].OrgUnit
		}
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].ID.String() < recs[j].ID.String()
	})
}

// bounds clamps an offset page to [0,total]. A zero limit means no limit.
func bounds(total int, page domain.PageRequest) (start, end int) {
	start = page.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end = total
	if page.Limit > 0 && start+page.Limit < total {
		end = start + page.Limit
	}
	return start, end
}

func clone(r domain.FiscalRecord) domain.FiscalRecord {
	if r.PaymentDate != nil {
		p := *r.PaymentDate
		r.PaymentDate = &p
	}
	return r
}
