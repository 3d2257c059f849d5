package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"darf/internal/domain"
	"darf/internal/service"
)

// QueryHandler handles document-number lookups and the payer listing.
type QueryHandler struct {
	queryService service.QueryService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(queryService service.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

// ByDocumentNumber handles GET /api/v1/records/document/:number
// @Summary      Find a record by document number
// @Description  The org_unit hint is required when the number exists in both org units
// @Tags         queries
// @Produce      json
// @Param        number path string true "Document number"
// @Param        org_unit query string false "PRIMARY or SECONDARY"
// @Success      200 {object} APIResponse{data=RecordResponse}
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /records/document/{number} [get]
func (h *QueryHandler) ByDocumentNumber(c *gin.Context) {
	hint, err := queryOrgUnit(c)
	if err != nil {
		respondBadInput(c, err)
		return
	}
	rec, err := h.queryService.FindByDocumentNumber(c.Request.Context(), c.Param("number"), hint)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toRecordResponse(rec))
}

// Autocomplete handles GET /api/v1/records/autocomplete
// @Summary      Document numbers starting with a term
// @Tags         queries
// @Produce      json
// @Param        term query string true "Document number prefix"
// @Param        org_unit query string false "PRIMARY or SECONDARY"
// @Param        page query int false "Zero-based page" default(0)
// @Param        size query int false "Page size (max 50)" default(10)
// @Param        limit query int false "Alias of size"
// @Success      200 {object} APIResponse{data=[]RecordResponse,meta=PagMeta}
// @Failure      400 {object} APIResponse
// @Security     BearerAuth
// @Router       /records/autocomplete [get]
func (h *QueryHandler) Autocomplete(c *gin.Context) {
	var req service.AutocompleteRequest
	var err error
	req.Term = c.Query("term")
	if req.OrgUnit, err = queryOrgUnit(c); err != nil {
		respondBadInput(c, err)
		return
	}
	pageNum, err := queryInt(c, "page")
	if err != nil {
		respondBadInput(c, err)
		return
	}
	if pageNum != nil {
		req.Page = *pageNum
	}
	if req.Size, err = queryInt(c, "size"); err != nil {
		respondBadInput(c, err)
		return
	}
	if req.Limit, err = queryInt(c, "limit"); err != nil {
		respondBadInput(c, err)
		return
	}

	p, err := h.queryService.Autocomplete(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, toRecordResponses(p.Records), PagMeta{Total: p.Total, Offset: p.Offset, Limit: p.Limit})
}

// ByStatus handles GET /api/v1/records/status/:status
// @Summary      List records with a given status
// @Tags         queries
// @Produce      json
// @Param        status path string true "SETTLED or PAID"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]RecordResponse,meta=PagMeta}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /records/status/{status} [get]
func (h *QueryHandler) ByStatus(c *gin.Context) {
	status, err := domain.ParseRecordStatus(c.Param("status"))
	if err != nil {
		respondBadInput(c, err)
		return
	}
	page, ok := parsePagination(c, 20)
	if !ok {
		return
	}
	p, err := h.queryService.ListByStatus(c.Request.Context(), status, page)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, toRecordResponses(p.Records), PagMeta{Total: p.Total, Offset: page.Offset, Limit: page.Limit})
}

// Payers handles GET /api/v1/payers
// @Summary      Payers with payments in a month
// @Tags         queries
// @Produce      json
// @Param        period query string true "Payment period YYYY-MM"
// @Param        org_unit query string false "PRIMARY or SECONDARY"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]string,meta=PagMeta}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /payers [get]
func (h *QueryHandler) Payers(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "period query parameter is required")
		return
	}
	org, err := queryOrgUnit(c)
	if err != nil {
		respondBadInput(c, err)
		return
	}
	page, ok := parsePagination(c, 20)
	if !ok {
		return
	}
	p, err := h.queryService.PayersWithPayments(c.Request.Context(), period, org, page)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, p.PayerTaxIDs, PagMeta{Total: p.Total, Offset: p.Offset, Limit: p.Limit})
}
