package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"darf/internal/csvexport"
	"darf/internal/domain"
	"darf/internal/service"
	"darf/internal/xlsxexport"
)

// ExportHandler serves CSV and workbook downloads and monthly archiving.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// RecordsCSV handles GET /api/v1/exports/records.csv
// @Summary      Export filtered records as CSV
// @Description  Accepts the same criteria as the record listing. An empty match yields a header-only file.
// @Tags         exports
// @Produce      text/csv
// @Param        org_unit query string false "PRIMARY or SECONDARY"
// @Param        status query string false "SETTLED or PAID"
// @Param        payment_year query int false "Payment year"
// @Param        payment_month query int false "Payment month"
// @Param        period query string false "Invoice period YYYY-MM"
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Security     BearerAuth
// @Router       /exports/records.csv [get]
func (h *ExportHandler) RecordsCSV(c *gin.Context) {
	criteria, _, err := parseFilterCriteria(c)
	if err != nil {
		respondBadInput(c, err)
		return
	}

	var buf bytes.Buffer
	if _, err := h.exportService.WriteCSV(c.Request.Context(), criteria, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("fiscal_records", time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// AnnualWorkbook handles GET /api/v1/exports/annual/:file where file is "{year}.xlsx"
// @Summary      Annual paid totals workbook
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        file path string true "Year with .xlsx suffix, e.g. 2024.xlsx"
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /exports/annual/{file} [get]
func (h *ExportHandler) AnnualWorkbook(c *gin.Context) {
	file := c.Param("file")
	year, err := strconv.Atoi(strings.TrimSuffix(file, ".xlsx"))
	if err != nil || !strings.HasSuffix(file, ".xlsx") {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "expected {year}.xlsx")
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteAnnualWorkbook(c.Request.Context(), year, &buf); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="darf_paid_%d.xlsx"`, year))
	c.Data(http.StatusOK, xlsxexport.ContentType, buf.Bytes())
}

// ArchiveMonthly handles POST /api/v1/exports/monthly
// @Summary      Archive a month's paid records to object storage
// @Tags         exports
// @Accept       json
// @Produce      json
// @Param        body body ArchiveRequest true "Month and org unit"
// @Success      201 {object} APIResponse{data=service.ArchiveResult}
// @Failure      400 {object} APIResponse
// @Security     BearerAuth
// @Router       /exports/monthly [post]
func (h *ExportHandler) ArchiveMonthly(c *gin.Context) {
	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	org, err := domain.ParseOrgUnit(req.OrgUnit)
	if err != nil {
		respondBadInput(c, err)
		return
	}

	result, err := h.exportService.ArchiveMonthly(c.Request.Context(), req.Year, req.Month, org)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}
