package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"darf/internal/domain"
)

// MockRecordStore is a mock implementation of port.RecordStore.
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) ExistsInvoiceTriple(ctx context.Context, payerTaxID string, invoiceNumber int, orgUnit domain.OrgUnit, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, payerTaxID, invoiceNumber, orgUnit, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordStore) ExistsDocumentNumber(ctx context.Context, documentNumber string, orgUnit domain.OrgUnit, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, documentNumber, orgUnit, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordStore) FindAllByDocumentNumber(ctx context.Context, documentNumber string) ([]domain.FiscalRecord, error) {
	args := m.Called(ctx, documentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalRecord), args.Error(1)
}

func (m *MockRecordStore) FindPage(ctx context.Context, filter domain.RecordFilter, page domain.PageRequest) (*domain.RecordPage, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordPage), args.Error(1)
}

func (m *MockRecordStore) FindAggregates(ctx context.Context, filter domain.RecordFilter) (*domain.Totals, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Totals), args.Error(1)
}

func (m *MockRecordStore) FindDistinctPayers(ctx context.Context, filter domain.RecordFilter, page domain.PageRequest) ([]string, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Int(1), args.Error(2)
}

func (m *MockRecordStore) Save(ctx context.Context, rec *domain.FiscalRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecordStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.FiscalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalRecord), args.Error(1)
}
