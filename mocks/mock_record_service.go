package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"darf/internal/domain"
	"darf/internal/service"
)

// MockRecordService is a mock implementation of service.RecordService.
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) Create(ctx context.Context, input service.RecordInput) (*domain.FiscalRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalRecord), args.Error(1)
}

func (m *MockRecordService) Update(ctx context.Context, id uuid.UUID, input service.RecordInput) (*domain.FiscalRecord, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalRecord), args.Error(1)
}

func (m *MockRecordService) MarkPaid(ctx context.Context, id uuid.UUID) (*domain.FiscalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalRecord), args.Error(1)
}

func (m *MockRecordService) Get(ctx context.Context, id uuid.UUID) (*domain.FiscalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalRecord), args.Error(1)
}

func (m *MockRecordService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
