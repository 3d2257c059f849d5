package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"darf/internal/domain"
	"darf/internal/service"
)

// MockQueryService is a mock implementation of service.QueryService.
type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) Filter(ctx context.Context, criteria service.FilterCriteria, page domain.PageRequest) (*domain.RecordPage, error) {
	args := m.Called(ctx, criteria, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordPage), args.Error(1)
}

func (m *MockQueryService) FindByDocumentNumber(ctx context.Context, documentNumber string, hint *domain.OrgUnit) (*domain.FiscalRecord, error) {
	args := m.Called(ctx, documentNumber, hint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalRecord), args.Error(1)
}

func (m *MockQueryService) Autocomplete(ctx context.Context, req service.AutocompleteRequest) (*domain.RecordPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordPage), args.Error(1)
}

func (m *MockQueryService) List(ctx context.Context, page domain.PageRequest) (*domain.RecordPage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordPage), args.Error(1)
}

func (m *MockQueryService) ListByStatus(ctx context.Context, status domain.RecordStatus, page domain.PageRequest) (*domain.RecordPage, error) {
	args := m.Called(ctx, status, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordPage), args.Error(1)
}

func (m *MockQueryService) PayersWithPayments(ctx context.Context, period string, orgUnit *domain.OrgUnit, page domain.PageRequest) (*domain.PayerPage, error) {
	args := m.Called(ctx, period, orgUnit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayerPage), args.Error(1)
}
