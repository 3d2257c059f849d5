package withholding

import (
	"sort"

	"github.com/shopspring/decimal"

	"darf/internal/domain"
)

func rates(ir, csll, cofins, pis string) domain.Rates {
	return domain.Rates{
		IR:     decimal.RequireFromString(ir),
		CSLL:   decimal.RequireFromString(csll),
		COFINS: decimal.RequireFromString(cofins),
		PIS:    decimal.RequireFromString(pis),
	}
}

// rateTable maps each fiscal code to its IR, CSLL, COFINS and PIS/PASEP percentages.
var rateTable = map[string]domain.Rates{
	"6147": rates("1.20", "1.00", "3.00", "0.65"),
	"6188": rates("2.40", "1.00", "3.00", "0.65"),
	"6190": rates("4.80", "1.00", "3.00", "0.65"),
	"8739": rates("0.24", "1.00", "0.00", "0.00"),
	"8767": rates("1.20", "1.00", "0.00", "0.00"),
	"8850": rates("2.40", "1.00", "3.00", "0.65"),
	"8863": rates("0.00", "1.00", "3.00", "0.65"),
	"9060": rates("0.24", "1.00", "3.00", "0.65"),
}

// LookupRates returns the rates of fiscalCode. Unknown codes are an error.
func LookupRates(fiscalCode string) (domain.Rates, error) {
	r, ok := rateTable[fiscalCode]
	if !ok {
		return domain.Rates{}, &domain.FiscalCodeError{FiscalCode: fiscalCode}
	}
	return r, nil
}

// RateEntry pairs a fiscal code with its rates.
type RateEntry struct {
	FiscalCode string       `json:"fiscal_code"`
	Rates      domain.Rates `json:"rates"`
}

// FiscalCodes returns the rate table ordered by fiscal code.
func FiscalCodes() []RateEntry {
	out := make([]RateEntry, 0, len(rateTable))
	for code, r := range rateTable {
		out = append(out, RateEntry{FiscalCode: code, Rates: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FiscalCode < out[j].FiscalCode })
	return out
}
