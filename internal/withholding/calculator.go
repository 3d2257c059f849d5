package withholding

import (
	"github.com/shopspring/decimal"

	"darf/internal/domain"
)

// Apply recomputes every derived field of detail from its fiscal code and gross
// amount. Stored rates are always replaced. On error detail is left unchanged.
func Apply(detail *domain.WithholdingDetail) error {
	r, err := LookupRates(detail.FiscalCode)
	if err != nil {
		return err
	}

	gross := detail.GrossAmount
	ir := withheld(gross, r.IR)
	csll := withheld(gross, r.CSLL)
	cofins := withheld(gross, r.COFINS)
	pis := withheld(gross, r.PIS)

	detail.RateIR = r.IR
	detail.RateCSLL = r.CSLL
	detail.RateCOFINS = r.COFINS
	detail.RatePIS = r.PIS
	detail.WithheldIR = ir
	detail.WithheldCSLL = csll
	detail.WithheldCOFINS = cofins
	detail.WithheldPIS = pis
	detail.NetAmount = gross.Sub(ir).Sub(csll).Sub(cofins).Sub(pis)
	return nil
}

// withheld is gross*rate/100 rounded half-up to cents.
func withheld(gross, rate decimal.Decimal) decimal.Decimal {
	return gross.Mul(rate).Shift(-2).Round(2)
}
