package validator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"darf/internal/domain"
	"darf/internal/validator"
	"darf/mocks"
)

func candidate() *domain.FiscalRecord {
	return &domain.FiscalRecord{
		OrgUnit:        domain.OrgUnitPrimary,
		DocumentNumber: " 123ab000001 ",
		PayerTaxID:     "12345678000195",
		InvoiceNumber:  10,
		InvoiceDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		IncomeNature:   "17040",
		Withholding: domain.WithholdingDetail{
			FiscalCode:  "6190",
			GrossAmount: decimal.RequireFromString("1000.00"),
		},
	}
}

func TestValidate_Passes_NormalizesDocumentNumber(t *testing.T) {
	store := new(mocks.MockRecordStore)
	v := validator.NewRecordValidator(store)
	rec := candidate()

	store.On("ExistsInvoiceTriple", mock.Anything, "12345678000195", 10, domain.OrgUnitPrimary, (*uuid.UUID)(nil)).Return(false, nil)
	store.On("ExistsDocumentNumber", mock.Anything, "123AB000001", domain.OrgUnitPrimary, (*uuid.UUID)(nil)).Return(false, nil)

	require.NoError(t, v.Validate(context.Background(), rec, nil))
	assert.Equal(t, "123AB000001", rec.DocumentNumber)
	store.AssertExpectations(t)
}

func TestValidate_GrossAmountMustBePositive(t *testing.T) {
	for _, gross := range []string{"0", "-1.00"} {
		t.Run(gross, func(t *testing.T) {
			store := new(mocks.MockRecordStore)
			v := validator.NewRecordValidator(store)
			rec := candidate()
			rec.Withholding.GrossAmount = decimal.RequireFromString(gross)

			err := v.Validate(context.Background(), rec, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidGrossAmount)
			store.AssertNotCalled(t, "ExistsInvoiceTriple", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestValidate_DuplicateInvoice_ShortCircuits(t *testing.T) {
	store := new(mocks.MockRecordStore)
	v := validator.NewRecordValidator(store)
	rec := candidate()

	store.On("ExistsInvoiceTriple", mock.Anything, rec.PayerTaxID, rec.InvoiceNumber, rec.OrgUnit, (*uuid.UUID)(nil)).Return(true, nil)

	err := v.Validate(context.Background(), rec, nil)
	var dup *domain.DuplicateInvoiceError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, 10, dup.InvoiceNumber)
	assert.Equal(t, domain.OrgUnitPrimary, dup.OrgUnit)
	store.AssertNotCalled(t, "ExistsDocumentNumber", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, " 123ab000001 ", rec.DocumentNumber)
}

func TestValidate_DuplicateDocumentNumber(t *testing.T) {
	store := new(mocks.MockRecordStore)
	v := validator.NewRecordValidator(store)
	rec := candidate()

	store.On("ExistsInvoiceTriple", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	store.On("ExistsDocumentNumber", mock.Anything, "123AB000001", domain.OrgUnitPrimary, (*uuid.UUID)(nil)).Return(true, nil)

	err := v.Validate(context.Background(), rec, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateDocumentNumber)
	assert.Contains(t, err.Error(), "123AB000001")
	assert.True(t, domain.IsConflict(err))
}

func TestValidate_UpdateExcludesOwnID(t *testing.T) {
	store := new(mocks.MockRecordStore)
	v := validator.NewRecordValidator(store)
	rec := candidate()
	id := uuid.New()

	store.On("ExistsInvoiceTriple", mock.Anything, mock.Anything, mock.Anything, mock.Anything, &id).Return(false, nil)
	store.On("ExistsDocumentNumber", mock.Anything, mock.Anything, mock.Anything, &id).Return(false, nil)

	require.NoError(t, v.Validate(context.Background(), rec, &id))
	store.AssertExpectations(t)
}

func TestValidate_PaymentDateBeforeInvoiceDate(t *testing.T) {
	store := new(mocks.MockRecordStore)
	v := validator.NewRecordValidator(store)
	rec := candidate()
	early := rec.InvoiceDate.AddDate(0, 0, -1)
	rec.PaymentDate = &early

	store.On("ExistsInvoiceTriple", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	store.On("ExistsDocumentNumber", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	err := v.Validate(context.Background(), rec, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentDate)
	assert.Contains(t, err.Error(), "2024-02-29")
}

func TestValidate_PaymentDateSameDayIsValid(t *testing.T) {
	store := new(mocks.MockRecordStore)
	v := validator.NewRecordValidator(store)
	rec := candidate()
	same := rec.InvoiceDate
	rec.PaymentDate = &same

	store.On("ExistsInvoiceTriple", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	store.On("ExistsDocumentNumber", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	assert.NoError(t, v.Validate(context.Background(), rec, nil))
}

func TestValidate_StoreErrorIsNotAConflict(t *testing.T) {
	store := new(mocks.MockRecordStore)
	v := validator.NewRecordValidator(store)

	store.On("ExistsInvoiceTriple", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("connection reset"))

	err := v.Validate(context.Background(), candidate(), nil)
	require.Error(t, err)
	assert.False(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestValidate_GrossAmountScale(t *testing.T) {
	tests := []struct {
		gross string
		ok    bool
	}{
		{"100.55", true},
		{"100.550", true},
		{"100", true},
		{"100.555", false},
		{"0.001", false},
	}
	for _, tt := range tests {
		t.Run(tt.gross, func(t *testing.T) {
			store := new(mocks.MockRecordStore)
			v := validator.NewRecordValidator(store)
			rec := candidate()
			rec.Withholding.GrossAmount = decimal.RequireFromString(tt.gross)

			if tt.ok {
				store.On("ExistsInvoiceTriple", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
				store.On("ExistsDocumentNumber", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
				assert.NoError(t, v.Validate(context.Background(), rec, nil))
				return
			}
			err := v.Validate(context.Background(), rec, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidGrossAmount)
			assert.Contains(t, err.Error(), "2 decimal places")
			store.AssertNotCalled(t, "ExistsInvoiceTriple", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestValidate_RuleOrder_InvoiceBeforePaymentDate(t *testing.T) {
	store := new(mocks.MockRecordStore)
	v := validator.NewRecordValidator(store)
	rec := candidate()
	early := rec.InvoiceDate.AddDate(0, 0, -1)
	rec.PaymentDate = &early

	store.On("ExistsInvoiceTriple", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	err := v.Validate(context.Background(), rec, nil)
	var dup *domain.DuplicateInvoiceError
	assert.True(t, errors.As(err, &dup))
	var order *domain.PaymentDateError
	assert.False(t, errors.As(err, &order))
}
