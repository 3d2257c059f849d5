package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"darf/internal/clock"
	"darf/internal/domain"
	"darf/internal/repository/memory"
	"darf/internal/service"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func orgPtr(o domain.OrgUnit) *domain.OrgUnit { return &o }

func statusPtr(s domain.RecordStatus) *domain.RecordStatus { return &s }

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func recordInput(doc string, invoice int, org domain.OrgUnit) service.RecordInput {
	return service.RecordInput{
		OrgUnit:        org,
		DocumentNumber: doc,
		PayerTaxID:     "12345678000195",
		InvoiceNumber:  invoice,
		InvoiceDate:    day(2024, 3, 15),
		IncomeNature:   "17040",
		GrossAmount:    amount("1000.00"),
	}
}

type fixture struct {
	store   *memory.RecordStore
	records service.RecordService
	clock   *clock.FakeClock
}

func newFixture() *fixture {
	store := memory.NewRecordStore()
	clk := clock.NewFakeClock(time.Date(2024, 5, 20, 14, 30, 0, 0, time.UTC))
	return &fixture{
		store:   store,
		records: service.NewRecordService(store, nil, clk, nil, nil),
		clock:   clk,
	}
}

func (f *fixture) create(t *testing.T, input service.RecordInput) *domain.FiscalRecord {
	t.Helper()
	rec, err := f.records.Create(context.Background(), input)
	require.NoError(t, err)
	return rec
}
