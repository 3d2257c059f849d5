package xlsxexport_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"darf/internal/domain"
	"darf/internal/xlsxexport"
)

func partition(org domain.OrgUnit, count int64, gross, withheld string) domain.PartitionTotals {
	g := decimal.RequireFromString(gross)
	w := decimal.RequireFromString(withheld)
	return domain.PartitionTotals{
		OrgUnit:     org,
		OrgUnitCode: org.Code(),
		Totals:      domain.Totals{Count: count, TotalGross: g, TotalWithheld: w, TotalNet: g.Sub(w)},
	}
}

func TestWriteAnnual(t *testing.T) {
	report := &domain.AnnualReport{
		Year: 2024,
		Months: []domain.MonthTotals{
			{Month: 3, MonthName: "Março", Partitions: []domain.PartitionTotals{
				partition(domain.OrgUnitPrimary, 2, "1000.00", "94.50"),
				partition(domain.OrgUnitSecondary, 0, "0", "0"),
			}},
			{Month: 5, MonthName: "Maio", Partitions: []domain.PartitionTotals{
				partition(domain.OrgUnitPrimary, 1, "500.00", "6.20"),
				partition(domain.OrgUnitSecondary, 1, "200.00", "18.90"),
			}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteAnnual(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsxexport.SheetName(2024))
	require.NoError(t, err)
	// header + 4 month rows + 2 totals
	require.Len(t, rows, 7)

	assert.Equal(t, "Month", rows[0][0])
	assert.Equal(t, "Março", rows[1][1])
	assert.Equal(t, "PRIMARY", rows[1][2])
	assert.Equal(t, "160147", rows[1][3])

	assert.Equal(t, "Total", rows[5][0])
	assert.Equal(t, "PRIMARY", rows[5][2])
	assert.Equal(t, "3", rows[5][4])
	assert.Equal(t, "SECONDARY", rows[6][2])
	assert.Equal(t, "1", rows[6][4])

	gross, err := f.GetCellValue(xlsxexport.SheetName(2024), "F6", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1500", gross)
}

func TestWriteAnnual_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteAnnual(&buf, &domain.AnnualReport{Year: 2023}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsxexport.SheetName(2023))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
