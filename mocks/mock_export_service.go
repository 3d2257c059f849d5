package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"darf/internal/domain"
	"darf/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) WriteCSV(ctx context.Context, criteria service.FilterCriteria, w io.Writer) (int, error) {
	args := m.Called(ctx, criteria, w)
	return args.Int(0), args.Error(1)
}

func (m *MockExportService) WriteAnnualWorkbook(ctx context.Context, year int, w io.Writer) error {
	args := m.Called(ctx, year, w)
	return args.Error(0)
}

func (m *MockExportService) ArchiveMonthly(ctx context.Context, year, month int, orgUnit domain.OrgUnit) (*service.ArchiveResult, error) {
	args := m.Called(ctx, year, month, orgUnit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}
