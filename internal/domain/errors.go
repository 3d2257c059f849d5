package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// Validation
	ErrInvalidGrossAmount = errors.New("invalid gross amount")
	ErrInvalidPaymentDate = errors.New("payment date precedes invoice date")
	ErrInvalidFilterRange = errors.New("invalid filter criteria")
	ErrInvalidOrgUnit     = errors.New("invalid org unit")
	ErrInvalidRole        = errors.New("invalid user role")

	// Conflict
	ErrDuplicateInvoice        = errors.New("duplicate invoice")
	ErrDuplicateDocumentNumber = errors.New("duplicate document number")
	ErrAmbiguousDocumentNumber = errors.New("ambiguous document number")
	ErrDuplicateEmail          = errors.New("email already exists")

	// Not found
	ErrRecordNotFound    = errors.New("record not found")
	ErrNoMatchingRecords = errors.New("no matching records")
	ErrNotFound          = errors.New("resource not found")

	// Domain lookup
	ErrInvalidFiscalCode    = errors.New("invalid fiscal code")
	ErrInvalidIncomeNature  = errors.New("invalid income nature")
	ErrIncomeNatureMismatch = errors.New("fiscal code does not match income nature")

	// Auth
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
)

// IsValidation reports whether err is caller-correctable input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidGrossAmount) ||
		errors.Is(err, ErrInvalidPaymentDate) ||
		errors.Is(err, ErrInvalidFilterRange) ||
		errors.Is(err, ErrInvalidOrgUnit) ||
		errors.Is(err, ErrInvalidRole)
}

// IsConflict reports whether err signals a business-state conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateInvoice) ||
		errors.Is(err, ErrDuplicateDocumentNumber) ||
		errors.Is(err, ErrAmbiguousDocumentNumber) ||
		errors.Is(err, ErrDuplicateEmail)
}

// IsNotFound reports whether err signals an absent record or an empty result.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrNoMatchingRecords) ||
		errors.Is(err, ErrNotFound)
}

// IsDomainLookup reports whether err is a catalog/rate-table mismatch.
func IsDomainLookup(err error) bool {
	return errors.Is(err, ErrInvalidFiscalCode) ||
		errors.Is(err, ErrInvalidIncomeNature) ||
		errors.Is(err, ErrIncomeNatureMismatch)
}

// FilterError reports a rejected query criterion.
type FilterError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *FilterError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid filter %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid filter %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *FilterError) Unwrap() error { return ErrInvalidFilterRange }

// OrgUnitError reports an unknown org unit.
type OrgUnitError struct {
	Value string
}

func (e *OrgUnitError) Error() string {
	return fmt.Sprintf("invalid org unit %q: must be PRIMARY (160147) or SECONDARY (167147)", e.Value)
}

func (e *OrgUnitError) Unwrap() error { return ErrInvalidOrgUnit }

// PaymentDateError reports a payment date earlier than its invoice date.
type PaymentDateError struct {
	InvoiceDate string
	PaymentDate string
}

func (e *PaymentDateError) Error() string {
	return fmt.Sprintf("payment date %s precedes invoice date %s", e.PaymentDate, e.InvoiceDate)
}

func (e *PaymentDateError) Unwrap() error { return ErrInvalidPaymentDate }

// DuplicateInvoiceError carries the conflicting invoice triple.
type DuplicateInvoiceError struct {
	PayerTaxID    string
	InvoiceNumber int
	OrgUnit       OrgUnit
}

func (e *DuplicateInvoiceError) Error() string {
	return fmt.Sprintf("invoice %d from payer %s already registered in org unit %s",
		e.InvoiceNumber, e.PayerTaxID, e.OrgUnit)
}

func (e *DuplicateInvoiceError) Unwrap() error { return ErrDuplicateInvoice }

// DuplicateDocumentNumberError carries the conflicting document number.
type DuplicateDocumentNumberError struct {
	DocumentNumber string
	OrgUnit        OrgUnit
}

func (e *DuplicateDocumentNumberError) Error() string {
	return fmt.Sprintf("document number %s already exists in org unit %s", e.DocumentNumber, e.OrgUnit)
}

func (e *DuplicateDocumentNumberError) Unwrap() error { return ErrDuplicateDocumentNumber }

// AmbiguousDocumentNumberError lists the org units sharing one document number.
type AmbiguousDocumentNumberError struct {
	DocumentNumber string
	Hint           *OrgUnit
	OrgUnits       []OrgUnit
}

func (e *AmbiguousDocumentNumberError) Error() string {
	units := make([]string, len(e.OrgUnits))
	for i, u := range e.OrgUnits {
		units[i] = string(u)
	}
	if e.Hint != nil {
		return fmt.Sprintf("document number %s is not unique for org unit %s (found in: %s)",
			e.DocumentNumber, *e.Hint, strings.Join(units, ", "))
	}
	return fmt.Sprintf("document number %s exists in several org units (%s); specify the org unit",
		e.DocumentNumber, strings.Join(units, ", "))
}

func (e *AmbiguousDocumentNumberError) Unwrap() error { return ErrAmbiguousDocumentNumber }

// RecordNotFoundError names the key that matched nothing.
type RecordNotFoundError struct {
	ID             uuid.UUID
	DocumentNumber string
}

func (e *RecordNotFoundError) Error() string {
	if e.DocumentNumber != "" {
		return fmt.Sprintf("no record with document number %s", e.DocumentNumber)
	}
	return fmt.Sprintf("no record with id %s", e.ID)
}

func (e *RecordNotFoundError) Unwrap() error { return ErrRecordNotFound }

// NoMatchError is returned when a query ran cleanly but produced nothing.
type NoMatchError struct {
	Criteria string
}

func (e *NoMatchError) Error() string {
	if e.Criteria == "" {
		return "no records found"
	}
	return "no records found for " + e.Criteria
}

func (e *NoMatchError) Unwrap() error { return ErrNoMatchingRecords }

// FiscalCodeError reports an unknown fiscal code or a catalog mismatch.
type FiscalCodeError struct {
	FiscalCode   string
	IncomeNature string
	Expected     string
}

func (e *FiscalCodeError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("fiscal code %s does not match income nature %s (expected %s)",
			e.FiscalCode, e.IncomeNature, e.Expected)
	}
	return fmt.Sprintf("unknown fiscal code %q", e.FiscalCode)
}

func (e *FiscalCodeError) Unwrap() error {
	if e.Expected != "" {
		return ErrIncomeNatureMismatch
	}
	return ErrInvalidFiscalCode
}

// IncomeNatureError reports a code outside the income-nature catalog.
type IncomeNatureError struct {
	Code string
}

func (e *IncomeNatureError) Error() string {
	return fmt.Sprintf("unknown income nature %q", e.Code)
}

func (e *IncomeNatureError) Unwrap() error { return ErrInvalidIncomeNature }
