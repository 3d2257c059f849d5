package handler_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"darf/internal/domain"
	"darf/internal/handler"
	"darf/internal/service"
	"darf/mocks"
)

func newRecordHandler() (*handler.RecordHandler, *mocks.MockRecordService, *mocks.MockQueryService) {
	recSvc := new(mocks.MockRecordService)
	querySvc := new(mocks.MockQueryService)
	return handler.NewRecordHandler(recSvc, querySvc), recSvc, querySvc
}

const validRecordBody = `{
	"org_unit": "primary",
	"document_number": "123ab456789",
	"payer_tax_id": "12345678000195",
	"invoice_number": 1542,
	"invoice_date": "2024-03-15",
	"payment_date": "2024-04-02",
	"income_nature": "17040",
	"gross_amount": "1000.00"
}`

func jsonContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestRecordHandler_Create_Success(t *testing.T) {
	h, recSvc, _ := newRecordHandler()
	rec := sampleRecord(t)

	recSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.RecordInput) bool {
		return in.OrgUnit == domain.OrgUnitPrimary &&
			in.DocumentNumber == "123ab456789" &&
			in.InvoiceNumber == 1542 &&
			in.PaymentDate != nil && in.PaymentDate.Format("2006-01-02") == "2024-04-02" &&
			in.FiscalCode == "" &&
			in.GrossAmount.StringFixed(2) == "1000.00"
	})).Return(rec, nil)

	c, w := jsonContext(http.MethodPost, "/api/v1/records", validRecordBody)
	setAuthContext(c, uuid.New(), "operator")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "2024-04-02", data["payment_date"])
	assert.Equal(t, float64(160147), data["org_unit_code"])
	withheld := data["withholding"].(map[string]interface{})
	assert.Equal(t, "94.50", withheld["total_withheld"])
	assert.Equal(t, "905.50", withheld["net_amount"])
	recSvc.AssertExpectations(t)
}

func TestRecordHandler_Create_InvalidDate(t *testing.T) {
	h, recSvc, _ := newRecordHandler()
	body := bytes.Replace([]byte(validRecordBody), []byte(`"2024-03-15"`), []byte(`"15/03/2024"`), 1)

	c, w := jsonContext(http.MethodPost, "/api/v1/records", string(body))
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, w).Error.Code)
	recSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordHandler_Create_InvalidOrgUnit(t *testing.T) {
	h, _, _ := newRecordHandler()
	body := bytes.Replace([]byte(validRecordBody), []byte(`"primary"`), []byte(`"TERTIARY"`), 1)

	c, w := jsonContext(http.MethodPost, "/api/v1/records", string(body))
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ORG_UNIT", decodeResponse(t, w).Error.Code)
}

func TestRecordHandler_Create_Duplicate(t *testing.T) {
	h, recSvc, _ := newRecordHandler()
	recSvc.On("Create", mock.Anything, mock.Anything).Return(nil, &domain.DuplicateInvoiceError{
		PayerTaxID: "12345678000195", InvoiceNumber: 1542, OrgUnit: domain.OrgUnitPrimary,
	})

	c, w := jsonContext(http.MethodPost, "/api/v1/records", validRecordBody)
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "DUPLICATE_INVOICE", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "1542")
}

func TestRecordHandler_Create_MissingFields(t *testing.T) {
	h, _, _ := newRecordHandler()

	c, w := jsonContext(http.MethodPost, "/api/v1/records", `{"org_unit": "PRIMARY"}`)
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordHandler_GetByID_InvalidID(t *testing.T) {
	h, _, _ := newRecordHandler()

	c, w := jsonContext(http.MethodGet, "/api/v1/records/not-a-uuid", "")
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeResponse(t, w).Error.Code)
}

func TestRecordHandler_GetByID_NotFound(t *testing.T) {
	h, recSvc, _ := newRecordHandler()
	id := uuid.New()
	recSvc.On("Get", mock.Anything, id).Return(nil, &domain.RecordNotFoundError{ID: id})

	c, w := jsonContext(http.MethodGet, "/api/v1/records/"+id.String(), "")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RECORD_NOT_FOUND", decodeResponse(t, w).Error.Code)
}

func TestRecordHandler_MarkPaid(t *testing.T) {
	h, recSvc, _ := newRecordHandler()
	rec := sampleRecord(t)
	recSvc.On("MarkPaid", mock.Anything, rec.ID).Return(rec, nil)

	c, w := jsonContext(http.MethodPost, "/api/v1/records/"+rec.ID.String()+"/pay", "")
	c.Params = gin.Params{{Key: "id", Value: rec.ID.String()}}
	h.MarkPaid(c)

	assert.Equal(t, http.StatusOK, w.Code)
	recSvc.AssertExpectations(t)
}

func TestRecordHandler_Delete(t *testing.T) {
	h, recSvc, _ := newRecordHandler()
	id := uuid.New()
	recSvc.On("Delete", mock.Anything, id).Return(nil)

	c, w := jsonContext(http.MethodDelete, "/api/v1/records/"+id.String(), "")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	recSvc.AssertExpectations(t)
}

func TestRecordHandler_List_WithoutCriteria(t *testing.T) {
	h, _, querySvc := newRecordHandler()
	page := domain.PageRequest{Offset: 0, Limit: 20}
	querySvc.On("List", mock.Anything, page).Return(&domain.RecordPage{Records: []domain.FiscalRecord{}, Total: 0}, nil)

	c, w := jsonContext(http.MethodGet, "/api/v1/records", "")
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, 20, resp.Meta.Limit)
	querySvc.AssertExpectations(t)
	querySvc.AssertNotCalled(t, "Filter", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordHandler_List_WithCriteria(t *testing.T) {
	h, _, querySvc := newRecordHandler()
	rec := sampleRecord(t)

	querySvc.On("Filter", mock.Anything, mock.MatchedBy(func(c service.FilterCriteria) bool {
		return c.Status != nil && *c.Status == domain.StatusPaid &&
			c.OrgUnit != nil && *c.OrgUnit == domain.OrgUnitPrimary &&
			c.Period != nil && *c.Period == "2024-03"
	}), domain.PageRequest{Offset: 5, Limit: 10}).
		Return(&domain.RecordPage{Records: []domain.FiscalRecord{*rec}, Total: 6}, nil)

	c, w := jsonContext(http.MethodGet, "/api/v1/records?status=paid&org_unit=160147&period=2024-03&offset=5&limit=10", "")
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, 6, resp.Meta.Total)
	assert.Len(t, resp.Data, 1)
	querySvc.AssertExpectations(t)
}

func TestRecordHandler_List_NoMatch(t *testing.T) {
	h, _, querySvc := newRecordHandler()
	querySvc.On("Filter", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &domain.NoMatchError{Criteria: "status PAID"})

	c, w := jsonContext(http.MethodGet, "/api/v1/records?status=PAID", "")
	h.List(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NO_MATCHING_RECORDS", decodeResponse(t, w).Error.Code)
}

func TestRecordHandler_List_BadInteger(t *testing.T) {
	h, _, _ := newRecordHandler()

	c, w := jsonContext(http.MethodGet, "/api/v1/records?invoice_year=abc", "")
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordHandler_Create_RejectsMalformedFields(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		field string
	}{
		{"document number pattern", `"123ab456789"`, `"not-a-doc-number"`, "document_number"},
		{"document number letters in wrong place", `"123ab456789"`, `"12AB3456789"`, "document_number"},
		{"payer check digits", `"12345678000195"`, `"12345678000190"`, "payer_tax_id"},
		{"payer not digits", `"12345678000195"`, `"ABCDEFGH000195"`, "payer_tax_id"},
		{"negative invoice number", `1542`, `-3`, "invoice_number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, recSvc, _ := newRecordHandler()
			body := bytes.Replace([]byte(validRecordBody), []byte(tt.from), []byte(tt.to), 1)

			c, w := jsonContext(http.MethodPost, "/api/v1/records", string(body))
			h.Create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.field)
			recSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRecordHandler_Create_AcceptsFormattedPayerTaxID(t *testing.T) {
	h, recSvc, _ := newRecordHandler()
	body := bytes.Replace([]byte(validRecordBody), []byte(`"12345678000195"`), []byte(`"12.345.678/0001-95"`), 1)

	recSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.RecordInput) bool {
		return in.PayerTaxID == "12345678000195"
	})).Return(sampleRecord(t), nil)

	c, w := jsonContext(http.MethodPost, "/api/v1/records", string(body))
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	recSvc.AssertExpectations(t)
}

func TestRecordHandler_Update_RejectsMalformedDocumentNumber(t *testing.T) {
	h, recSvc, _ := newRecordHandler()
	id := uuid.New()
	body := bytes.Replace([]byte(validRecordBody), []byte(`"123ab456789"`), []byte(`"2024"`), 1)

	c, w := jsonContext(http.MethodPut, "/api/v1/records/"+id.String(), string(body))
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, w).Error.Code)
	recSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordHandler_List_BlankCriterionIsNotDropped(t *testing.T) {
	for _, query := range []string{"payer_tax_id=%20", "payer_tax_id=", "fiscal_code=%20%20", "document_number="} {
		t.Run(query, func(t *testing.T) {
			h, _, querySvc := newRecordHandler()
			querySvc.On("Filter", mock.Anything, mock.MatchedBy(func(c service.FilterCriteria) bool {
				return c.PayerTaxID != nil || c.FiscalCode != nil || c.DocumentNumber != nil
			}), mock.Anything).Return(nil, &domain.FilterError{Field: "payer_tax_id", Reason: "must not be blank"})

			c, w := jsonContext(http.MethodGet, "/api/v1/records?"+query, "")
			h.List(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "INVALID_FILTER", decodeResponse(t, w).Error.Code)
			querySvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
			querySvc.AssertExpectations(t)
		})
	}
}
