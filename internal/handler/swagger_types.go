package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"darf/internal/domain"
	"darf/internal/service"
)

const dateLayout = "2006-01-02"

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ops@example.com"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RegisterRequest represents the create-user request body.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"clerk@example.com"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
	FullName string `json:"full_name" binding:"required" example:"Maria Souza"`
	Role     string `json:"role" binding:"required" example:"operator"`
}

// RecordRequest is the body of record create and update requests. Dates use
// YYYY-MM-DD; fiscal_code may be omitted and is then derived from income_nature.
type RecordRequest struct {
	OrgUnit        string          `json:"org_unit" binding:"required" example:"PRIMARY"`
	DocumentNumber string          `json:"document_number" binding:"required" example:"123AB456789"`
	PayerTaxID     string          `json:"payer_tax_id" binding:"required" example:"12345678000195"`
	InvoiceNumber  int             `json:"invoice_number" binding:"required" example:"1542"`
	InvoiceDate    string          `json:"invoice_date" binding:"required" example:"2024-03-15"`
	PaymentDate    *string         `json:"payment_date" example:"2024-04-02"`
	IncomeNature   string          `json:"income_nature" binding:"required" example:"17040"`
	FiscalCode     string          `json:"fiscal_code" example:"6190"`
	GrossAmount    decimal.Decimal `json:"gross_amount" swaggertype:"string" example:"1000.00"`
}

// toInput converts the request into the service input.
func (r *RecordRequest) toInput() (service.RecordInput, error) {
	org, err := domain.ParseOrgUnit(r.OrgUnit)
	if err != nil {
		return service.RecordInput{}, err
	}
	invoiceDate, err := time.Parse(dateLayout, r.InvoiceDate)
	if err != nil {
		return service.RecordInput{}, fmt.Errorf("invalid 'invoice_date': must be YYYY-MM-DD")
	}
	input := service.RecordInput{
		OrgUnit:        org,
		DocumentNumber: r.DocumentNumber,
		PayerTaxID:     domain.NormalizePayerTaxID(r.PayerTaxID),
		InvoiceNumber:  r.InvoiceNumber,
		InvoiceDate:    invoiceDate,
		IncomeNature:   strings.TrimSpace(r.IncomeNature),
		FiscalCode:     strings.TrimSpace(r.FiscalCode),
		GrossAmount:    r.GrossAmount,
	}
	if r.PaymentDate != nil && *r.PaymentDate != "" {
		p, err := time.Parse(dateLayout, *r.PaymentDate)
		if err != nil {
			return service.RecordInput{}, fmt.Errorf("invalid 'payment_date': must be YYYY-MM-DD")
		}
		input.PaymentDate = &p
	}
	if err := input.CheckShape(); err != nil {
		return service.RecordInput{}, err
	}
	return input, nil
}

// ArchiveRequest asks for the monthly CSV of one org unit to be archived.
type ArchiveRequest struct {
	Year    int    `json:"year" binding:"required" example:"2024"`
	Month   int    `json:"month" binding:"required" example:"3"`
	OrgUnit string `json:"org_unit" binding:"required" example:"PRIMARY"`
}

// --- Response Types ---

// WithholdingResponse renders amounts with two decimal places.
type WithholdingResponse struct {
	FiscalCode     string `json:"fiscal_code" example:"6190"`
	GrossAmount    string `json:"gross_amount" example:"1000.00"`
	RateIR         string `json:"rate_ir" example:"4.80"`
	RateCSLL       string `json:"rate_csll" example:"1.00"`
	RateCOFINS     string `json:"rate_cofins" example:"3.00"`
	RatePIS        string `json:"rate_pis_pasep" example:"0.65"`
	WithheldIR     string `json:"withheld_ir" example:"48.00"`
	WithheldCSLL   string `json:"withheld_csll" example:"10.00"`
	WithheldCOFINS string `json:"withheld_cofins" example:"30.00"`
	WithheldPIS    string `json:"withheld_pis_pasep" example:"6.50"`
	TotalWithheld  string `json:"total_withheld" example:"94.50"`
	NetAmount      string `json:"net_amount" example:"905.50"`
}

// RecordResponse is the API view of a fiscal record.
type RecordResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrgUnit        domain.OrgUnit      `json:"org_unit" example:"PRIMARY"`
	OrgUnitCode    int                 `json:"org_unit_code" example:"160147"`
	DocumentNumber string              `json:"document_number" example:"123AB456789"`
	PayerTaxID     string              `json:"payer_tax_id" example:"12345678000195"`
	InvoiceNumber  int                 `json:"invoice_number" example:"1542"`
	InvoiceDate    string              `json:"invoice_date" example:"2024-03-15"`
	PaymentDate    *string             `json:"payment_date,omitempty" example:"2024-04-02"`
	Status         domain.RecordStatus `json:"status" example:"PAID"`
	IncomeNature   string              `json:"income_nature" example:"17040"`
	Withholding    WithholdingResponse `json:"withholding"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func toRecordResponse(rec *domain.FiscalRecord) RecordResponse {
	w := &rec.Withholding
	resp := RecordResponse{
		ID:             rec.ID,
		OrgUnit:        rec.OrgUnit,
		OrgUnitCode:    rec.OrgUnit.Code(),
		DocumentNumber: rec.DocumentNumber,
		PayerTaxID:     rec.PayerTaxID,
		InvoiceNumber:  rec.InvoiceNumber,
		InvoiceDate:    rec.InvoiceDate.Format(dateLayout),
		Status:         rec.Status,
		IncomeNature:   rec.IncomeNature,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
		Withholding: WithholdingResponse{
			FiscalCode:     w.FiscalCode,
			GrossAmount:    w.GrossAmount.StringFixed(2),
			RateIR:         w.RateIR.StringFixed(2),
			RateCSLL:       w.RateCSLL.StringFixed(2),
			RateCOFINS:     w.RateCOFINS.StringFixed(2),
			RatePIS:        w.RatePIS.StringFixed(2),
			WithheldIR:     w.WithheldIR.StringFixed(2),
			WithheldCSLL:   w.WithheldCSLL.StringFixed(2),
			WithheldCOFINS: w.WithheldCOFINS.StringFixed(2),
			WithheldPIS:    w.WithheldPIS.StringFixed(2),
			TotalWithheld:  w.TotalWithheld().StringFixed(2),
			NetAmount:      w.NetAmount.StringFixed(2),
		},
	}
	if rec.PaymentDate != nil {
		p := rec.PaymentDate.Format(dateLayout)
		resp.PaymentDate = &p
	}
	return resp
}

func toRecordResponses(recs []domain.FiscalRecord) []RecordResponse {
	out := make([]RecordResponse, len(recs))
	for i := range recs {
		out[i] = toRecordResponse(&recs[i])
	}
	return out
}
