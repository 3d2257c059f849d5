package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"darf/internal/domain"
	"darf/internal/service"
)

// Sheet columns, first row is the header.
const (
	colOrgUnit = iota
	colDocumentNumber
	colPayerTaxID
	colInvoiceNumber
	colInvoiceDate
	colPaymentDate
	colIncomeNature
	colFiscalCode
	colGrossAmount
	minColumns = colGrossAmount + 1
)

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// parseRow converts one raw sheet row into a record input.
func parseRow(row []string) (service.RecordInput, error) {
	if len(row) < minColumns {
		return service.RecordInput{}, fmt.Errorf("expected %d columns, got %d", minColumns, len(row))
	}

	org, err := domain.ParseOrgUnit(cellVal(row, colOrgUnit))
	if err != nil {
		return service.RecordInput{}, err
	}
	invoiceNumber, err := strconv.Atoi(cellVal(row, colInvoiceNumber))
	if err != nil {
		return service.RecordInput{}, fmt.Errorf("invoice number %q is not an integer", cellVal(row, colInvoiceNumber))
	}
	invoiceDate, err := parseDate(cellVal(row, colInvoiceDate))
	if err != nil {
		return service.RecordInput{}, fmt.Errorf("invoice date: %w", err)
	}
	gross, err := parseAmount(cellVal(row, colGrossAmount))
	if err != nil {
		return service.RecordInput{}, fmt.Errorf("gross amount: %w", err)
	}

	input := service.RecordInput{
		OrgUnit:        org,
		DocumentNumber: cellVal(row, colDocumentNumber),
		PayerTaxID:     domain.NormalizePayerTaxID(cellVal(row, colPayerTaxID)),
		InvoiceNumber:  invoiceNumber,
		InvoiceDate:    invoiceDate,
		IncomeNature:   cellVal(row, colIncomeNature),
		FiscalCode:     cellVal(row, colFiscalCode),
		GrossAmount:    gross,
	}
	if raw := cellVal(row, colPaymentDate); raw != "" {
		paid, perr := parseDate(raw)
		if perr != nil {
			return service.RecordInput{}, fmt.Errorf("payment date: %w", perr)
		}
		input.PaymentDate = &paid
	}
	if err := input.CheckShape(); err != nil {
		return service.RecordInput{}, err
	}
	return input, nil
}

// parseDate accepts ISO dates, dd/mm/yyyy and Excel serial numbers.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseAmount accepts "1234.56" and the local "1.234,56" form.
func parseAmount(s string) (decimal.Decimal, error) {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
