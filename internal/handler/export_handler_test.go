package handler_test

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"darf/internal/domain"
	"darf/internal/handler"
	"darf/internal/service"
	"darf/mocks"
)

func newExportHandler() (*handler.ExportHandler, *mocks.MockExportService) {
	svc := new(mocks.MockExportService)
	return handler.NewExportHandler(svc), svc
}

func TestExportHandler_RecordsCSV(t *testing.T) {
	h, svc := newExportHandler()
	svc.On("WriteCSV", mock.Anything, mock.AnythingOfType("service.FilterCriteria"), mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(2).(io.Writer), "Org Unit,Document Number\n")
		}).Return(0, nil)

	c, w := jsonContext(http.MethodGet, "/api/v1/exports/records.csv?status=PAID", "")
	h.RecordsCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "fiscal_records_")
	assert.Equal(t, "Org Unit,Document Number\n", w.Body.String())
}

func TestExportHandler_RecordsCSV_InvalidCriteria(t *testing.T) {
	h, svc := newExportHandler()
	svc.On("WriteCSV", mock.Anything, mock.Anything, mock.Anything).
		Return(0, &domain.FilterError{Field: "period", Value: "2024-13", Reason: "must be YYYY-MM"})

	c, w := jsonContext(http.MethodGet, "/api/v1/exports/records.csv?period=2024-13", "")
	h.RecordsCSV(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FILTER", decodeResponse(t, w).Error.Code)
}

func TestExportHandler_AnnualWorkbook_BadSuffix(t *testing.T) {
	h, svc := newExportHandler()

	c, w := jsonContext(http.MethodGet, "/api/v1/exports/annual/2024.csv", "")
	c.Params = gin.Params{{Key: "file", Value: "2024.csv"}}
	h.AnnualWorkbook(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "WriteAnnualWorkbook", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportHandler_AnnualWorkbook(t *testing.T) {
	h, svc := newExportHandler()
	svc.On("WriteAnnualWorkbook", mock.Anything, 2024, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(2).(io.Writer), "PK")
		}).Return(nil)

	c, w := jsonContext(http.MethodGet, "/api/v1/exports/annual/2024.xlsx", "")
	c.Params = gin.Params{{Key: "file", Value: "2024.xlsx"}}
	h.AnnualWorkbook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "darf_paid_2024.xlsx")
	assert.Equal(t, "PK", w.Body.String())
}

func TestExportHandler_ArchiveMonthly(t *testing.T) {
	h, svc := newExportHandler()
	svc.On("ArchiveMonthly", mock.Anything, 2024, 3, domain.OrgUnitSecondary).Return(&service.ArchiveResult{
		OrgUnit: domain.OrgUnitSecondary, Year: 2024, Month: 3,
		Key: "exports/secondary/2024-03.csv", Records: 4, URL: "https://example.com/x",
	}, nil)

	c, w := jsonContext(http.MethodPost, "/api/v1/exports/monthly", `{"year": 2024, "month": 3, "org_unit": "167147"}`)
	h.ArchiveMonthly(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestExportHandler_ArchiveMonthly_StorageFailure(t *testing.T) {
	h, svc := newExportHandler()
	svc.On("ArchiveMonthly", mock.Anything, 2024, 3, domain.OrgUnitPrimary).Return(nil, errors.New("s3 unavailable"))

	c, w := jsonContext(http.MethodPost, "/api/v1/exports/monthly", `{"year": 2024, "month": 3, "org_unit": "PRIMARY"}`)
	h.ArchiveMonthly(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
