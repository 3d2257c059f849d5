package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rates holds the four withholding percentages of one fiscal code.
type Rates struct {
	IR     decimal.Decimal `json:"ir"`
	CSLL   decimal.Decimal `json:"csll"`
	COFINS decimal.Decimal `json:"cofins"`
	PIS    decimal.Decimal `json:"pis_pasep"`
}

// Total returns the combined percentage.
func (r Rates) Total() decimal.Decimal {
	return r.IR.Add(r.CSLL).Add(r.COFINS).Add(r.PIS)
}

// WithholdingDetail is owned by exactly one FiscalRecord. Only FiscalCode and
// GrossAmount are inputs; every other field is recomputed from them.
type WithholdingDetail struct {
	FiscalCode     string          `json:"fiscal_code"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	RateIR         decimal.Decimal `json:"rate_ir"`
	RateCSLL       decimal.Decimal `json:"rate_csll"`
	RateCOFINS     decimal.Decimal `json:"rate_cofins"`
	RatePIS        decimal.Decimal `json:"rate_pis_pasep"`
	WithheldIR     decimal.Decimal `json:"withheld_ir"`
	WithheldCSLL   decimal.Decimal `json:"withheld_csll"`
	WithheldCOFINS decimal.Decimal `json:"withheld_cofins"`
	WithheldPIS    decimal.Decimal `json:"withheld_pis_pasep"`
	NetAmount      decimal.Decimal `json:"net_amount"`
}

// TotalWithheld sums the four withheld amounts.
func (w *WithholdingDetail) TotalWithheld() decimal.Decimal {
	return w.WithheldIR.Add(w.WithheldCSLL).Add(w.WithheldCOFINS).Add(w.WithheldPIS)
}

// FiscalRecord is a payment document issued against an invoice.
type FiscalRecord struct {
	ID             uuid.UUID         `json:"id"`
	OrgUnit        OrgUnit           `json:"org_unit"`
	DocumentNumber string            `json:"document_number"`
	PayerTaxID     string            `json:"payer_tax_id"`
	InvoiceNumber  int               `json:"invoice_number"`
	InvoiceDate    time.Time         `json:"invoice_date"`
	PaymentDate    *time.Time        `json:"payment_date,omitempty"`
	Status         RecordStatus      `json:"status"`
	IncomeNature   string            `json:"income_nature"`
	Withholding    WithholdingDetail `json:"withholding"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// SortOrder selects the ordering of a record page.
type SortOrder string

const (
	SortCreatedDesc       SortOrder = "created_desc"
	SortDocumentNumberAsc SortOrder = "document_number_asc"
)

// PageRequest describes an offset page of results.
type PageRequest struct {
	Offset int
	Limit  int
	Sort   SortOrder
}

// RecordPage is one page of records plus the total match count.
type RecordPage struct {
	Records []FiscalRecord `json:"records"`
	Total   int            `json:"total"`
	Offset  int            `json:"offset"`
	Limit   int            `json:"limit"`
}

// Totals is the aggregate over a set of records.
type Totals struct {
	Count         int64           `json:"count" db:"count"`
	TotalWithheld decimal.Decimal `json:"total_withheld" db:"total_withheld"`
	TotalGross    decimal.Decimal `json:"total_gross" db:"total_gross"`
	TotalNet      decimal.Decimal `json:"total_net" db:"total_net"`
}

// ZeroTotals returns an empty aggregate.
func ZeroTotals() Totals {
	return Totals{TotalWithheld: decimal.Zero, TotalGross: decimal.Zero, TotalNet: decimal.Zero}
}

// Add accumulates the amounts of rec into t.
func (t *Totals) Add(rec *FiscalRecord) {
	t.Count++
	t.TotalWithheld = t.TotalWithheld.Add(rec.Withholding.TotalWithheld())
	t.TotalGross = t.TotalGross.Add(rec.Withholding.GrossAmount)
	t.TotalNet = t.TotalNet.Add(rec.Withholding.NetAmount)
}

// PartitionTotals is the aggregate of a single org unit.
type PartitionTotals struct {
	OrgUnit     OrgUnit `json:"org_unit"`
	OrgUnitCode int     `json:"org_unit_code"`
	Totals
}

// AggregateReport is the result of a flexible aggregation.
type AggregateReport struct {
	InvoiceYear      *int              `json:"invoice_year,omitempty"`
	InvoiceMonth     *int              `json:"invoice_month,omitempty"`
	InvoiceMonthName string            `json:"invoice_month_name,omitempty"`
	PaymentYear      *int              `json:"payment_year,omitempty"`
	PaymentMonth     *int              `json:"payment_month,omitempty"`
	PaymentMonthName string            `json:"payment_month_name,omitempty"`
	Status           *RecordStatus     `json:"status,omitempty"`
	Partitions       []PartitionTotals `json:"partitions"`
}

// MonthTotals is one month of an annual report.
type MonthTotals struct {
	Month      int               `json:"month"`
	MonthName  string            `json:"month_name"`
	Partitions []PartitionTotals `json:"partitions"`
}

// AnnualReport aggregates records of every status by invoice month.
type AnnualReport struct {
	Year   int           `json:"year"`
	Months []MonthTotals `json:"months"`
}

// PayerPage lists distinct payer tax ids.
type PayerPage struct {
	PayerTaxIDs []string `json:"payer_tax_ids"`
	Total       int      `json:"total"`
	Offset      int      `json:"offset"`
	Limit       int      `json:"limit"`
}

// User is an operator of the service.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
