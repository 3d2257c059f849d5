package handler

import (
	"github.com/gin-gonic/gin"

	"darf/internal/domain"
	"darf/internal/withholding"
)

// CatalogHandler serves the rate table and the income-nature catalog.
type CatalogHandler struct{}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// FiscalCodes handles GET /api/v1/catalog/fiscal-codes
// @Summary      Withholding rate table
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse{data=[]withholding.RateEntry}
// @Router       /catalog/fiscal-codes [get]
func (h *CatalogHandler) FiscalCodes(c *gin.Context) {
	RespondOK(c, withholding.FiscalCodes())
}

// IncomeNatures handles GET /api/v1/catalog/income-natures
// @Summary      Income-nature catalog
// @Tags         catalog
// @Produce      json
// @Param        fiscal_code query string false "Only natures mapped to this fiscal code"
// @Success      200 {object} APIResponse{data=[]domain.IncomeNature}
// @Failure      422 {object} APIResponse
// @Router       /catalog/income-natures [get]
func (h *CatalogHandler) IncomeNatures(c *gin.Context) {
	code := c.Query("fiscal_code")
	if code == "" {
		RespondOK(c, domain.IncomeNatures())
		return
	}
	if _, err := withholding.LookupRates(code); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, domain.IncomeNaturesForFiscalCode(code))
}
