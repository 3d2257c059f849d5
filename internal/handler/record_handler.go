package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"darf/internal/domain"
	"darf/internal/service"
)

// RecordHandler handles fiscal record endpoints.
type RecordHandler struct {
	recordService service.RecordService
	queryService  service.QueryService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService service.RecordService, queryService service.QueryService) *RecordHandler {
	return &RecordHandler{recordService: recordService, queryService: queryService}
}

// Create handles POST /api/v1/records
// @Summary      Create a fiscal record
// @Description  Validates the record, computes the withholding and derives the status from the payment date
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body body RecordRequest true "Record"
// @Success      201 {object} APIResponse{data=RecordResponse}
// @Failure      400 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Security     BearerAuth
// @Router       /records [post]
func (h *RecordHandler) Create(c *gin.Context) {
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondBadInput(c, err)
		return
	}

	rec, err := h.recordService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, toRecordResponse(rec))
}

// Update handles PUT /api/v1/records/:id
// @Summary      Replace a fiscal record
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        id path string true "Record ID"
// @Param        body body RecordRequest true "Record"
// @Success      200 {object} APIResponse{data=RecordResponse}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Security     BearerAuth
// @Router       /records/{id} [put]
func (h *RecordHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondBadInput(c, err)
		return
	}

	rec, err := h.recordService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toRecordResponse(rec))
}

// MarkPaid handles POST /api/v1/records/:id/pay
// @Summary      Mark a record as paid today
// @Tags         records
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} APIResponse{data=RecordResponse}
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /records/{id}/pay [post]
func (h *RecordHandler) MarkPaid(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	rec, err := h.recordService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toRecordResponse(rec))
}

// GetByID handles GET /api/v1/records/:id
// @Summary      Get a fiscal record
// @Tags         records
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} APIResponse{data=RecordResponse}
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /records/{id} [get]
func (h *RecordHandler) GetByID(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	rec, err := h.recordService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toRecordResponse(rec))
}

// Delete handles DELETE /api/v1/records/:id
// @Summary      Delete a fiscal record
// @Tags         records
// @Produce      json
// @Param        id path string true "Record ID"
// @Success      200 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /records/{id} [delete]
func (h *RecordHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.recordService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "record deleted"})
}

// List handles GET /api/v1/records
// @Summary      List or filter fiscal records
// @Description  Without criteria every record is listed newest first. With criteria an empty result is a 404.
// @Tags         records
// @Produce      json
// @Param        payer_tax_id query string false "Payer tax id"
// @Param        status query string false "SETTLED or PAID"
// @Param        org_unit query string false "PRIMARY or SECONDARY"
// @Param        document_number query string false "Document number"
// @Param        invoice_number query int false "Invoice number"
// @Param        fiscal_code query string false "Fiscal code"
// @Param        income_nature query string false "Income nature"
// @Param        invoice_year query int false "Invoice year"
// @Param        invoice_month query int false "Invoice month"
// @Param        payment_year query int false "Payment year"
// @Param        payment_month query int false "Payment month"
// @Param        period query string false "Invoice period YYYY-MM"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]RecordResponse,meta=PagMeta}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /records [get]
func (h *RecordHandler) List(c *gin.Context) {
	page, ok := parsePagination(c, 20)
	if !ok {
		return
	}
	criteria, filtered, err := parseFilterCriteria(c)
	if err != nil {
		respondBadInput(c, err)
		return
	}

	var p *domain.RecordPage
	if filtered {
		p, err = h.queryService.Filter(c.Request.Context(), criteria, page)
	} else {
		p, err = h.queryService.List(c.Request.Context(), page)
	}
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, toRecordResponses(p.Records), PagMeta{Total: p.Total, Offset: page.Offset, Limit: page.Limit})
}
