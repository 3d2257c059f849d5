package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"darf/internal/domain"
	"darf/internal/service"
)

// MockAggregateService is a mock implementation of service.AggregateService.
type MockAggregateService struct {
	mock.Mock
}

func (m *MockAggregateService) Aggregate(ctx context.Context, criteria service.AggregateCriteria) (*domain.AggregateReport, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AggregateReport), args.Error(1)
}

func (m *MockAggregateService) Annual(ctx context.Context, year int) (*domain.AnnualReport, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnnualReport), args.Error(1)
}

func (m *MockAggregateService) TotalWithheld(ctx context.Context, year, month int, orgUnit domain.OrgUnit) (*domain.PartitionTotals, error) {
	args := m.Called(ctx, year, month, orgUnit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartitionTotals), args.Error(1)
}
