package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockAggregateCache is a mock implementation of port.AggregateCache.
type MockAggregateCache struct {
	mock.Mock
}

func (m *MockAggregateCache) Get(ctx context.Context, key string) ([]byte, int64, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Bool(2), args.Error(3)
	}
	return args.Get(0).([]byte), args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *MockAggregateCache) Set(ctx context.Context, key string, version int64, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, version, value, ttl)
	return args.Error(0)
}

func (m *MockAggregateCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
