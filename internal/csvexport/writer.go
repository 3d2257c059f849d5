package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"darf/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const dateLayout = "2006-01-02"

// columns defines the CSV header row (21 columns).
var columns = []string{
	"Org Unit",
	"Org Unit Code",
	"Document Number",
	"Payer Tax ID",
	"Invoice Number",
	"Invoice Date",
	"Payment Date",
	"Status",
	"Income Nature",
	"Fiscal Code",
	"Gross Amount",
	"Rate IR",
	"Rate CSLL",
	"Rate COFINS",
	"Rate PIS",
	"Withheld IR",
	"Withheld CSLL",
	"Withheld COFINS",
	"Withheld PIS",
	"Total Withheld",
	"Net Amount",
}

// Writer wraps csv.Writer for exporting fiscal records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of records to CSV rows and writes them.
func (w *Writer) WriteRecords(recs []domain.FiscalRecord) error {
	for i := range recs {
		if err := w.csv.Write(recordToRow(&recs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func recordToRow(rec *domain.FiscalRecord) []string {
	wd := &rec.Withholding
	return []string{
		string(rec.OrgUnit),
		strconv.Itoa(rec.OrgUnit.Code()),
		rec.DocumentNumber,
		rec.PayerTaxID,
		strconv.Itoa(rec.InvoiceNumber),
		rec.InvoiceDate.Format(dateLayout),
		formatDate(rec.PaymentDate),
		string(rec.Status),
		rec.IncomeNature,
		wd.FiscalCode,
		formatMoney(wd.GrossAmount),
		formatMoney(wd.RateIR),
		formatMoney(wd.RateCSLL),
		formatMoney(wd.RateCOFINS),
		formatMoney(wd.RatePIS),
		formatMoney(wd.WithheldIR),
		formatMoney(wd.WithheldCSLL),
		formatMoney(wd.WithheldCOFINS),
		formatMoney(wd.WithheldPIS),
		formatMoney(wd.TotalWithheld()),
		formatMoney(wd.NetAmount),
	}
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(name), now.Format(dateLayout))
}

// ArchiveKey is the object key of a monthly export: exports/{org}/{YYYY-MM}.csv.
func ArchiveKey(org domain.OrgUnit, year, month int) string {
	return fmt.Sprintf("exports/%s/%04d-%02d.csv", strings.ToLower(string(org)), year, month)
}
