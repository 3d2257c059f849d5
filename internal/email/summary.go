// Package email renders notification bodies shared by the sender implementations.
package email

import (
	"fmt"
	"html"
	"strings"

	"darf/internal/domain"
	"darf/internal/port"
)

// SummarySubject returns the subject line of a monthly summary.
func SummarySubject(s port.MonthlySummary) string {
	return fmt.Sprintf("DARF withholding summary %s/%d", domain.MonthName(s.Month), s.Year)
}

// SummaryText renders the plain-text body.
func SummaryText(s port.MonthlySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Withholding totals for PAID records invoiced in %s/%d\n\n", domain.MonthName(s.Month), s.Year)
	for i := range s.Partitions {
		p := &s.Partitions[i]
		fmt.Fprintf(&b, "%s (%d): %d records, gross %s, withheld %s, net %s\n",
			p.OrgUnit, p.OrgUnitCode, p.Count,
			p.TotalGross.StringFixed(2), p.TotalWithheld.StringFixed(2), p.TotalNet.StringFixed(2))
	}
	if len(s.Archives) > 0 {
		b.WriteString("\nCSV exports:\n")
		for _, a := range s.Archives {
			fmt.Fprintf(&b, "%s: %s\n", a.OrgUnit, a.URL)
		}
	}
	return b.String()
}

// SummaryHTML renders the HTML body.
func SummaryHTML(s port.MonthlySummary) string {
	var rows strings.Builder
	for i := range s.Partitions {
		p := &s.Partitions[i]
		fmt.Fprintf(&rows, `    <tr><td>%s</td><td>%d</td><td style="text-align: right;">%d</td><td style="text-align: right;">%s</td><td style="text-align: right;">%s</td><td style="text-align: right;">%s</td></tr>
`, html.EscapeString(string(p.OrgUnit)), p.OrgUnitCode, p.Count,
			p.TotalGross.StringFixed(2), p.TotalWithheld.StringFixed(2), p.TotalNet.StringFixed(2))
	}

	var links strings.Builder
	for _, a := range s.Archives {
		fmt.Fprintf(&links, `  <p><a href="%s">Download the %s CSV export</a></p>
`, html.EscapeString(a.URL), html.EscapeString(string(a.OrgUnit)))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Withholding summary %s/%d</h2>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr><th>Org unit</th><th>Code</th><th>Records</th><th>Gross</th><th>Withheld</th><th>Net</th></tr>
%s  </table>
%s  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">DARF - Fiscal withholding records</p>
</body>
</html>`, domain.MonthName(s.Month), s.Year, rows.String(), links.String())
}
