// Package xlsxexport renders aggregate reports as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"darf/internal/domain"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// builtin "#,##0.00"
const moneyNumFmt = 4

var annualHeader = []interface{}{
	"Month", "Month Name", "Org Unit", "Org Unit Code", "Records", "Gross", "Withheld", "Net",
}

// SheetName returns the name of the sheet holding year.
func SheetName(year int) string {
	return fmt.Sprintf("Invoiced %d", year)
}

// WriteAnnual writes one row per (month, org unit) of report followed by a
// totals row per org unit.
func WriteAnnual(w io.Writer, report *domain.AnnualReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := SheetName(report.Year)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsxexport.WriteAnnual: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsxexport.WriteAnnual: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return fmt.Errorf("xlsxexport.WriteAnnual: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &annualHeader); err != nil {
		return fmt.Errorf("xlsxexport.WriteAnnual: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", bold); err != nil {
		return fmt.Errorf("xlsxexport.WriteAnnual: %w", err)
	}

	totals := make(map[domain.OrgUnit]*domain.Totals)
	row := 2
	for _, m := range report.Months {
		for i := range m.Partitions {
			p := &m.Partitions[i]
			if err := writeRow(f, sheet, row, []interface{}{m.Month, m.MonthName}, p); err != nil {
				return err
			}
			acc, ok := totals[p.OrgUnit]
			if !ok {
				zero := domain.ZeroTotals()
				acc = &zero
				totals[p.OrgUnit] = acc
			}
			acc.Count += p.Count
			acc.TotalGross = acc.TotalGross.Add(p.TotalGross)
			acc.TotalWithheld = acc.TotalWithheld.Add(p.TotalWithheld)
			acc.TotalNet = acc.TotalNet.Add(p.TotalNet)
			row++
		}
	}

	firstTotal := row
	for _, u := range domain.OrgUnits() {
		acc, ok := totals[u]
		if !ok {
			continue
		}
		p := &domain.PartitionTotals{OrgUnit: u, OrgUnitCode: u.Code(), Totals: *acc}
		if err := writeRow(f, sheet, row, []interface{}{"Total", ""}, p); err != nil {
			return err
		}
		row++
	}
	if row > firstTotal {
		start, _ := excelize.CoordinatesToCellName(1, firstTotal)
		end, _ := excelize.CoordinatesToCellName(len(annualHeader), row-1)
		if err := f.SetCellStyle(sheet, start, end, bold); err != nil {
			return fmt.Errorf("xlsxexport.WriteAnnual: %w", err)
		}
	}

	if row > 2 {
		end, _ := excelize.CoordinatesToCellName(len(annualHeader), row-1)
		if err := f.SetCellStyle(sheet, "F2", end, money); err != nil {
			return fmt.Errorf("xlsxexport.WriteAnnual: %w", err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "H", 16); err != nil {
		return fmt.Errorf("xlsxexport.WriteAnnual: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport.WriteAnnual: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, lead []interface{}, p *domain.PartitionTotals) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsxexport.writeRow: %w", err)
	}
	values := append(lead,
		string(p.OrgUnit),
		p.OrgUnitCode,
		p.Count,
		p.TotalGross.InexactFloat64(),
		p.TotalWithheld.InexactFloat64(),
		p.TotalNet.InexactFloat64(),
	)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsxexport.writeRow: %w", err)
	}
	return nil
}
