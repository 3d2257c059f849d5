package handler_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"darf/internal/domain"
	"darf/internal/handler"
	"darf/internal/middleware"
	"darf/internal/withholding"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setAuthContext(c *gin.Context, userID uuid.UUID, role string) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyEmail, "ops@example.com")
	c.Set(middleware.ContextKeyRole, role)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleRecord(t *testing.T) *domain.FiscalRecord {
	t.Helper()
	paid := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	rec := &domain.FiscalRecord{
		ID:             uuid.New(),
		OrgUnit:        domain.OrgUnitPrimary,
		DocumentNumber: "123AB456789",
		PayerTaxID:     "12345678000195",
		InvoiceNumber:  1542,
		InvoiceDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		PaymentDate:    &paid,
		Status:         domain.StatusPaid,
		IncomeNature:   "17040",
		Withholding: domain.WithholdingDetail{
			FiscalCode:  "6190",
			GrossAmount: decimal.RequireFromString("1000.00"),
		},
	}
	require.NoError(t, withholding.Apply(&rec.Withholding))
	return rec
}
