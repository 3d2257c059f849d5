package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"darf/internal/domain"
	"darf/internal/service"
)

// respondBadInput writes a 400 for request parsing errors, keeping the domain
// code when the error is a known validation error.
func respondBadInput(c *gin.Context, err error) {
	if domain.IsValidation(err) {
		HandleError(c, err)
		return
	}
	RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}

func queryInt(c *gin.Context, name string) (*int, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid '%s': must be an integer", name)
	}
	return &v, nil
}

func queryString(c *gin.Context, name string) *string {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil
	}
	return &s
}

// queryCriterion returns the raw value of a present parameter, blank or not,
// so the service can reject blank criteria instead of dropping them.
func queryCriterion(c *gin.Context, name string) *string {
	s, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	return &s
}

func queryOrgUnit(c *gin.Context) (*domain.OrgUnit, error) {
	s := queryString(c, "org_unit")
	if s == nil {
		return nil, nil
	}
	org, err := domain.ParseOrgUnit(*s)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func queryStatus(c *gin.Context) (*domain.RecordStatus, error) {
	s := queryString(c, "status")
	if s == nil {
		return nil, nil
	}
	status, err := domain.ParseRecordStatus(*s)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// parseFilterCriteria extracts record search criteria from query params.
// It reports whether any criterion was given.
func parseFilterCriteria(c *gin.Context) (criteria service.FilterCriteria, filtered bool, err error) {
	criteria.PayerTaxID = queryCriterion(c, "payer_tax_id")
	criteria.DocumentNumber = queryCriterion(c, "document_number")
	criteria.FiscalCode = queryCriterion(c, "fiscal_code")
	criteria.IncomeNature = queryCriterion(c, "income_nature")
	criteria.Period = queryString(c, "period")

	if criteria.OrgUnit, err = queryOrgUnit(c); err != nil {
		return criteria, false, err
	}
	if criteria.Status, err = queryStatus(c); err != nil {
		return criteria, false, err
	}

	ints := []struct {
		name string
		dst  **int
	}{
		{"invoice_number", &criteria.InvoiceNumber},
		{"invoice_year", &criteria.InvoiceYear},
		{"invoice_month", &criteria.InvoiceMonth},
		{"payment_year", &criteria.PaymentYear},
		{"payment_month", &criteria.PaymentMonth},
	}
	for _, p := range ints {
		if *p.dst, err = queryInt(c, p.name); err != nil {
			return criteria, false, err
		}
	}

	filtered = criteria.PayerTaxID != nil || criteria.DocumentNumber != nil ||
		criteria.FiscalCode != nil || criteria.IncomeNature != nil || criteria.Period != nil ||
		criteria.OrgUnit != nil || criteria.Status != nil || criteria.InvoiceNumber != nil ||
		criteria.InvoiceYear != nil || criteria.InvoiceMonth != nil ||
		criteria.PaymentYear != nil || criteria.PaymentMonth != nil
	return criteria, filtered, nil
}

// parseAggregateCriteria extracts aggregation criteria from query params.
func parseAggregateCriteria(c *gin.Context) (criteria service.AggregateCriteria, err error) {
	if criteria.OrgUnit, err = queryOrgUnit(c); err != nil {
		return criteria, err
	}
	if criteria.Status, err = queryStatus(c); err != nil {
		return criteria, err
	}
	if criteria.InvoiceYear, err = queryInt(c, "invoice_year"); err != nil {
		return criteria, err
	}
	if criteria.InvoiceMonth, err = queryInt(c, "invoice_month"); err != nil {
		return criteria, err
	}
	if criteria.PaymentYear, err = queryInt(c, "payment_year"); err != nil {
		return criteria, err
	}
	if criteria.PaymentMonth, err = queryInt(c, "payment_month"); err != nil {
		return criteria, err
	}
	return criteria, nil
}
