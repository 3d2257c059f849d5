package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"darf/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendMonthlySummary(ctx context.Context, to []string, summary port.MonthlySummary) error {
	args := m.Called(ctx, to, summary)
	return args.Error(0)
}
