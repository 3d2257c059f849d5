package service

import (
	"strings"
	"time"

	"darf/internal/domain"
)

const (
	minYear = 2000
	maxYear = 2100
)

func checkYear(field string, year *int) error {
	if year != nil && (*year < minYear || *year > maxYear) {
		return &domain.FilterError{Field: field, Value: *year, Reason: "must be between 2000 and 2100"}
	}
	return nil
}

func checkMonth(field string, month *int) error {
	if month != nil && (*month < 1 || *month > 12) {
		return &domain.FilterError{Field: field, Value: *month, Reason: "must be between 1 and 12"}
	}
	return nil
}

// checkPeriodRanges validates the invoice and payment year/month criteria.
func checkPeriodRanges(invoiceYear, invoiceMonth, paymentYear, paymentMonth *int) error {
	if err := checkYear("invoice_year", invoiceYear); err != nil {
		return err
	}
	if err := checkMonth("invoice_month", invoiceMonth); err != nil {
		return err
	}
	if err := checkYear("payment_year", paymentYear); err != nil {
		return err
	}
	return checkMonth("payment_month", paymentMonth)
}

// parsePeriod parses a YYYY-MM period and checks its year range.
func parsePeriod(field, s string) (year, month int, err error) {
	t, perr := time.Parse("2006-01", strings.TrimSpace(s))
	if perr != nil {
		return 0, 0, &domain.FilterError{Field: field, Value: s, Reason: "must be formatted as YYYY-MM"}
	}
	year, month = t.Year(), int(t.Month())
	if err := checkYear(field, &year); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

// nonBlank trims s and rejects whitespace-only values. A nil s stays nil.
func nonBlank(field string, s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, &domain.FilterError{Field: field, Reason: "must not be blank"}
	}
	return &v, nil
}

func intPtr(v int) *int { return &v }
