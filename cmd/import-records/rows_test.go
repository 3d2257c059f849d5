package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darf/internal/domain"
)

func TestParseRow(t *testing.T) {
	row := []string{"primary", "123AB456789", "12345678000195", "1542", "2024-03-15", "02/04/2024", "17040", "6190", "1.000,00"}

	input, err := parseRow(row)
	require.NoError(t, err)
	assert.Equal(t, domain.OrgUnitPrimary, input.OrgUnit)
	assert.Equal(t, 1542, input.InvoiceNumber)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), input.InvoiceDate)
	require.NotNil(t, input.PaymentDate)
	assert.Equal(t, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), *input.PaymentDate)
	assert.Equal(t, "1000", input.GrossAmount.String())
}

func TestParseRow_OpenRecordAndSerialDate(t *testing.T) {
	row := []string{"160147", "123AB456789", "12345678000195", "7", "45366", "", "17040", "", "250.10"}

	input, err := parseRow(row)
	require.NoError(t, err)
	assert.Nil(t, input.PaymentDate)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), input.InvoiceDate)
	assert.Empty(t, input.FiscalCode)
	assert.Equal(t, "250.1", input.GrossAmount.String())
}

func TestParseRow_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"too few columns", []string{"PRIMARY", "123AB456789"}},
		{"bad org unit", []string{"NOWHERE", "123AB456789", "1", "1", "2024-03-15", "", "17040", "", "1"}},
		{"bad invoice number", []string{"PRIMARY", "123AB456789", "1", "x", "2024-03-15", "", "17040", "", "1"}},
		{"bad date", []string{"PRIMARY", "123AB456789", "1", "1", "15.03.2024", "", "17040", "", "1"}},
		{"bad amount", []string{"PRIMARY", "123AB456789", "1", "1", "2024-03-15", "", "17040", "", "abc"}},
		{"bad document number", []string{"PRIMARY", "12AB3456789", "12345678000195", "1", "2024-03-15", "", "17040", "", "1"}},
		{"bad payer tax id", []string{"PRIMARY", "123AB456789", "12345678000190", "1", "2024-03-15", "", "17040", "", "1"}},
		{"non-positive invoice number", []string{"PRIMARY", "123AB456789", "12345678000195", "0", "2024-03-15", "", "17040", "", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRow(tt.row)
			assert.Error(t, err)
		})
	}
}

func TestParseRow_NormalizesPayerTaxID(t *testing.T) {
	row := []string{"PRIMARY", "123AB456789", "529.982.247-25", "3", "2024-03-15", "", "17040", "", "10.00"}

	input, err := parseRow(row)
	require.NoError(t, err)
	assert.Equal(t, "52998224725", input.PayerTaxID)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, isBlank(nil))
	assert.True(t, isBlank([]string{" ", ""}))
	assert.False(t, isBlank([]string{"", "x"}))
}
