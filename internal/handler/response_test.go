package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"darf/internal/domain"
	"darf/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"duplicate invoice", &domain.DuplicateInvoiceError{PayerTaxID: "1", InvoiceNumber: 2, OrgUnit: domain.OrgUnitPrimary}, http.StatusConflict, "DUPLICATE_INVOICE"},
		{"duplicate document", &domain.DuplicateDocumentNumberError{DocumentNumber: "123AB456789", OrgUnit: domain.OrgUnitPrimary}, http.StatusConflict, "DUPLICATE_DOCUMENT_NUMBER"},
		{"ambiguous", &domain.AmbiguousDocumentNumberError{DocumentNumber: "123AB456789", OrgUnits: domain.OrgUnits()}, http.StatusConflict, "AMBIGUOUS_DOCUMENT_NUMBER"},
		{"gross amount", domain.ErrInvalidGrossAmount, http.StatusBadRequest, "INVALID_GROSS_AMOUNT"},
		{"payment date", &domain.PaymentDateError{}, http.StatusBadRequest, "INVALID_PAYMENT_DATE"},
		{"filter range", &domain.FilterError{Field: "invoice_month"}, http.StatusBadRequest, "INVALID_FILTER"},
		{"org unit", &domain.OrgUnitError{Value: "X"}, http.StatusBadRequest, "INVALID_ORG_UNIT"},
		{"not found", &domain.RecordNotFoundError{DocumentNumber: "123AB456789"}, http.StatusNotFound, "RECORD_NOT_FOUND"},
		{"no match", &domain.NoMatchError{Criteria: "status PAID"}, http.StatusNotFound, "NO_MATCHING_RECORDS"},
		{"mismatch", &domain.FiscalCodeError{FiscalCode: "6147", IncomeNature: "17040", Expected: "6190"}, http.StatusUnprocessableEntity, "INCOME_NATURE_MISMATCH"},
		{"unknown fiscal code", &domain.FiscalCodeError{FiscalCode: "0000"}, http.StatusUnprocessableEntity, "INVALID_FISCAL_CODE"},
		{"unknown income nature", &domain.IncomeNatureError{Code: "99999"}, http.StatusUnprocessableEntity, "INVALID_INCOME_NATURE"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"wrapped", fmt.Errorf("userRepo.Create: %w", domain.ErrDuplicateEmail), http.StatusConflict, "DUPLICATE_EMAIL"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_KeepsBusinessMessage(t *testing.T) {
	err := &domain.DuplicateDocumentNumberError{DocumentNumber: "123AB456789", OrgUnit: domain.OrgUnitPrimary}
	_, _, msg := handler.MapDomainError(err)
	assert.Equal(t, "document number 123AB456789 already exists in org unit PRIMARY", msg)
}
