package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"darf/internal/service"
)

// AggregateHandler handles totals and reports.
type AggregateHandler struct {
	aggregateService service.AggregateService
}

// NewAggregateHandler creates a new AggregateHandler.
func NewAggregateHandler(aggregateService service.AggregateService) *AggregateHandler {
	return &AggregateHandler{aggregateService: aggregateService}
}

// Aggregate handles GET /api/v1/aggregates
// @Summary      Totals per org unit
// @Description  Counts and sums withheld, gross and net amounts per org unit over the filtered records
// @Tags         aggregates
// @Produce      json
// @Param        org_unit query string false "PRIMARY or SECONDARY"
// @Param        status query string false "SETTLED or PAID"
// @Param        invoice_year query int false "Invoice year"
// @Param        invoice_month query int false "Invoice month"
// @Param        payment_year query int false "Payment year"
// @Param        payment_month query int false "Payment month"
// @Success      200 {object} APIResponse{data=domain.AggregateReport}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /aggregates [get]
func (h *AggregateHandler) Aggregate(c *gin.Context) {
	criteria, err := parseAggregateCriteria(c)
	if err != nil {
		respondBadInput(c, err)
		return
	}
	report, err := h.aggregateService.Aggregate(c.Request.Context(), criteria)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Annual handles GET /api/v1/aggregates/annual/:year
// @Summary      Totals by invoice month, all statuses
// @Tags         aggregates
// @Produce      json
// @Param        year path int true "Invoice year"
// @Success      200 {object} APIResponse{data=domain.AnnualReport}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Security     BearerAuth
// @Router       /aggregates/annual/{year} [get]
func (h *AggregateHandler) Annual(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid 'year': must be an integer")
		return
	}
	report, err := h.aggregateService.Annual(c.Request.Context(), year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// Withheld handles GET /api/v1/aggregates/withheld
// @Summary      Total withheld on paid records of one org unit invoiced in a month
// @Tags         aggregates
// @Produce      json
// @Param        year query int true "Invoice year"
// @Param        month query int true "Invoice month"
// @Param        org_unit query string true "PRIMARY or SECONDARY"
// @Success      200 {object} APIResponse{data=domain.PartitionTotals}
// @Failure      400 {object} APIResponse
// @Security     BearerAuth
// @Router       /aggregates/withheld [get]
func (h *AggregateHandler) Withheld(c *gin.Context) {
	year, err := queryInt(c, "year")
	if err != nil {
		respondBadInput(c, err)
		return
	}
	month, err := queryInt(c, "month")
	if err != nil {
		respondBadInput(c, err)
		return
	}
	org, err := queryOrgUnit(c)
	if err != nil {
		respondBadInput(c, err)
		return
	}
	if year == nil || month == nil || org == nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "year, month and org_unit are required")
		return
	}

	totals, err := h.aggregateService.TotalWithheld(c.Request.Context(), *year, *month, *org)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, totals)
}
