package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var documentNumberPattern = regexp.MustCompile(`^\d{3}[A-Z]{2}\d{6}$`)

// NormalizeDocumentNumber trims and upper-cases a document number.
func NormalizeDocumentNumber(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidDocumentNumber reports whether s (after normalization) has the
// 3 digits + 2 letters + 6 digits shape.
func ValidDocumentNumber(s string) bool {
	return documentNumberPattern.MatchString(NormalizeDocumentNumber(s))
}

// RecordFilter is a conjunction of optional criteria. Nil fields match everything.
type RecordFilter struct {
	PayerTaxID           *string
	Status               *RecordStatus
	OrgUnit              *OrgUnit
	DocumentNumber       *string
	DocumentNumberPrefix *string
	InvoiceNumber        *int
	FiscalCode           *string
	IncomeNature         *string
	InvoiceYear          *int
	InvoiceMonth         *int
	PaymentYear          *int
	PaymentMonth         *int
}

// WithOrgUnit returns a copy of f restricted to org.
func (f RecordFilter) WithOrgUnit(org OrgUnit) RecordFilter {
	f.OrgUnit = &org
	return f
}

// Matches evaluates the filter against rec.
func (f *RecordFilter) Matches(rec *FiscalRecord) bool {
	if f.PayerTaxID != nil && rec.PayerTaxID != *f.PayerTaxID {
		return false
	}
	if f.Status != nil && rec.Status != *f.Status {
		return false
	}
	if f.OrgUnit != nil && rec.OrgUnit != *f.OrgUnit {
		return false
	}
	if f.DocumentNumber != nil && NormalizeDocumentNumber(rec.DocumentNumber) != NormalizeDocumentNumber(*f.DocumentNumber) {
		return false
	}
	if f.DocumentNumberPrefix != nil &&
		!strings.HasPrefix(NormalizeDocumentNumber(rec.DocumentNumber), NormalizeDocumentNumber(*f.DocumentNumberPrefix)) {
		return false
	}
	if f.InvoiceNumber != nil && rec.InvoiceNumber != *f.InvoiceNumber {
		return false
	}
	if f.FiscalCode != nil && rec.Withholding.FiscalCode != *f.FiscalCode {
		return false
	}
	if f.IncomeNature != nil && rec.IncomeNature != *f.IncomeNature {
		return false
	}
	if f.InvoiceYear != nil && rec.InvoiceDate.Year() != *f.InvoiceYear {
		return false
	}
	if f.InvoiceMonth != nil && int(rec.InvoiceDate.Month()) != *f.InvoiceMonth {
		return false
	}
	if f.PaymentYear != nil || f.PaymentMonth != nil {
		if rec.PaymentDate == nil {
			return false
		}
		if f.PaymentYear != nil && rec.PaymentDate.Year() != *f.PaymentYear {
			return false
		}
		if f.PaymentMonth != nil && int(rec.PaymentDate.Month()) != *f.PaymentMonth {
			return false
		}
	}
	return true
}

// Describe renders the active criteria for "no results" messages.
func (f *RecordFilter) Describe() string {
	var parts []string
	if f.OrgUnit != nil {
		parts = append(parts, "org unit "+string(*f.OrgUnit))
	}
	if f.Status != nil {
		parts = append(parts, "status "+string(*f.Status))
	}
	if f.PayerTaxID != nil {
		parts = append(parts, "payer "+*f.PayerTaxID)
	}
	if f.DocumentNumber != nil {
		parts = append(parts, "document number "+*f.DocumentNumber)
	}
	if f.DocumentNumberPrefix != nil {
		parts = append(parts, "document number prefix "+*f.DocumentNumberPrefix)
	}
	if f.InvoiceNumber != nil {
		parts = append(parts, fmt.Sprintf("invoice number %d", *f.InvoiceNumber))
	}
	if f.FiscalCode != nil {
		parts = append(parts, "fiscal code "+*f.FiscalCode)
	}
	if f.IncomeNature != nil {
		parts = append(parts, "income nature "+*f.IncomeNature)
	}
	if d := describePeriod("invoice", f.InvoiceYear, f.InvoiceMonth); d != "" {
		parts = append(parts, d)
	}
	if d := describePeriod("payment", f.PaymentYear, f.PaymentMonth); d != "" {
		parts = append(parts, d)
	}
	if len(parts) == 0 {
		return "no criteria"
	}
	return strings.Join(parts, ", ")
}

func describePeriod(kind string, year, month *int) string {
	switch {
	case year != nil && month != nil:
		return fmt.Sprintf("%s month %d/%d", kind, *month, *year)
	case year != nil:
		return fmt.Sprintf("%s year %d", kind, *year)
	case month != nil:
		return fmt.Sprintf("%s month %d", kind, *month)
	}
	return ""
}
