package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"darf/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestResolveStatus(t *testing.T) {
	paid := date(2024, 3, 10)
	assert.Equal(t, domain.StatusPaid, domain.ResolveStatus(&paid))
	assert.Equal(t, domain.StatusSettled, domain.ResolveStatus(nil))
}

func TestParseOrgUnit(t *testing.T) {
	tests := []struct {
		in   string
		want domain.OrgUnit
	}{
		{"PRIMARY", domain.OrgUnitPrimary},
		{" secondary ", domain.OrgUnitSecondary},
		{"160147", domain.OrgUnitPrimary},
		{"167147", domain.OrgUnitSecondary},
		{"primaria", domain.OrgUnitPrimary},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseOrgUnit(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := domain.ParseOrgUnit("TERTIARY")
	assert.ErrorIs(t, err, domain.ErrInvalidOrgUnit)
	assert.True(t, domain.IsValidation(err))
}

func TestOrgUnitCode(t *testing.T) {
	assert.Equal(t, 160147, domain.OrgUnitPrimary.Code())
	assert.Equal(t, 167147, domain.OrgUnitSecondary.Code())
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Janeiro", domain.MonthName(1))
	assert.Equal(t, "Dezembro", domain.MonthName(12))
	assert.Equal(t, "", domain.MonthName(13))
}

func TestIncomeNatureCatalog(t *testing.T) {
	all := domain.IncomeNatures()
	assert.Len(t, all, 40)
	assert.Equal(t, "17001", all[0].Code)
	assert.Equal(t, "17040", all[39].Code)

	n, err := domain.LookupIncomeNature("17033")
	require.NoError(t, err)
	assert.Equal(t, "6190", n.FiscalCode)

	_, err = domain.LookupIncomeNature("99999")
	assert.ErrorIs(t, err, domain.ErrInvalidIncomeNature)
	assert.True(t, domain.IsDomainLookup(err))

	assert.Len(t, domain.IncomeNaturesForFiscalCode("9060"), 3)
	assert.Empty(t, domain.IncomeNaturesForFiscalCode("6188"))
}

func TestResolveFiscalCode(t *testing.T) {
	code, err := domain.ResolveFiscalCode("17001", "")
	require.NoError(t, err)
	assert.Equal(t, "6147", code)

	code, err = domain.ResolveFiscalCode("17001", "6147")
	require.NoError(t, err)
	assert.Equal(t, "6147", code)

	_, err = domain.ResolveFiscalCode("17001", "6190")
	assert.ErrorIs(t, err, domain.ErrIncomeNatureMismatch)
	assert.Contains(t, err.Error(), "expected 6147")
}

func TestValidDocumentNumber(t *testing.T) {
	assert.True(t, domain.ValidDocumentNumber("123np000123"))
	assert.False(t, domain.ValidDocumentNumber("2024NP000123"))
	assert.True(t, domain.ValidDocumentNumber(" 123AB456789 "))
	assert.False(t, domain.ValidDocumentNumber("12AB456789"))
	assert.False(t, domain.ValidDocumentNumber("123A1456789"))
	assert.Equal(t, "123AB456789", domain.NormalizeDocumentNumber(" 123ab456789"))
}

func TestValidPayerTaxID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"12345678000195", true},
		{"12.345.678/0001-95", true},
		{"11222333000181", true},
		{"52998224725", true},
		{"529.982.247-25", true},
		{"12345678000190", false},
		{"52998224724", false},
		{"11111111111111", false},
		{"00000000000", false},
		{"1234567800019", false},
		{"1234567800019X", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ValidPayerTaxID(tt.in), tt.in)
	}
	assert.Equal(t, "12345678000195", domain.NormalizePayerTaxID(" 12.345.678/0001-95 "))
}

func sampleRecord() domain.FiscalRecord {
	paid := date(2024, 4, 2)
	return domain.FiscalRecord{
		ID:             uuid.New(),
		OrgUnit:        domain.OrgUnitPrimary,
		DocumentNumber: "123NP000001",
		PayerTaxID:     "12345678000195",
		InvoiceNumber:  55,
		InvoiceDate:    date(2024, 3, 15),
		PaymentDate:    &paid,
		Status:         domain.StatusPaid,
		IncomeNature:   "17040",
		Withholding:    domain.WithholdingDetail{FiscalCode: "6190"},
	}
}

func TestRecordFilter_Matches(t *testing.T) {
	rec := sampleRecord()
	primary := domain.OrgUnitPrimary
	secondary := domain.OrgUnitSecondary
	paid := domain.StatusPaid
	lower := "123np000001"
	prefix := "123n"
	code := "6190"

	tests := []struct {
		name   string
		filter domain.RecordFilter
		want   bool
	}{
		{"empty filter", domain.RecordFilter{}, true},
		{"org unit", domain.RecordFilter{OrgUnit: &primary}, true},
		{"other org unit", domain.RecordFilter{OrgUnit: &secondary}, false},
		{"status", domain.RecordFilter{Status: &paid}, true},
		{"document number ignores case", domain.RecordFilter{DocumentNumber: &lower}, true},
		{"prefix", domain.RecordFilter{DocumentNumberPrefix: &prefix}, true},
		{"fiscal code", domain.RecordFilter{FiscalCode: &code}, true},
		{"invoice month", domain.RecordFilter{InvoiceYear: intPtr(2024), InvoiceMonth: intPtr(3)}, true},
		{"wrong invoice month", domain.RecordFilter{InvoiceMonth: intPtr(4)}, false},
		{"payment month", domain.RecordFilter{PaymentYear: intPtr(2024), PaymentMonth: intPtr(4)}, true},
		{"invoice number", domain.RecordFilter{InvoiceNumber: intPtr(56)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(&rec))
		})
	}
}

func TestRecordFilter_PaymentCriteriaRequirePaymentDate(t *testing.T) {
	rec := sampleRecord()
	rec.PaymentDate = nil
	f := domain.RecordFilter{PaymentMonth: intPtr(4)}
	assert.False(t, f.Matches(&rec))
}

func TestRecordFilter_Describe(t *testing.T) {
	org := domain.OrgUnitPrimary
	f := domain.RecordFilter{OrgUnit: &org, InvoiceYear: intPtr(2024), InvoiceMonth: intPtr(3)}
	assert.Equal(t, "org unit PRIMARY, invoice month 3/2024", f.Describe())

	empty := domain.RecordFilter{}
	assert.Equal(t, "no criteria", empty.Describe())
}

func TestResolveDocumentLookup(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	b.OrgUnit = domain.OrgUnitSecondary

	t.Run("not found", func(t *testing.T) {
		l := domain.ResolveDocumentLookup(nil, nil)
		assert.Equal(t, domain.LookupNotFound, l.Kind)
		assert.ErrorIs(t, l.Err("X", nil), domain.ErrRecordNotFound)
	})

	t.Run("unique", func(t *testing.T) {
		l := domain.ResolveDocumentLookup([]domain.FiscalRecord{a}, nil)
		assert.Equal(t, domain.LookupUnique, l.Kind)
		assert.Equal(t, a.ID, l.Record.ID)
		assert.NoError(t, l.Err("X", nil))
	})

	t.Run("ambiguous without hint", func(t *testing.T) {
		l := domain.ResolveDocumentLookup([]domain.FiscalRecord{a, b}, nil)
		assert.Equal(t, domain.LookupAmbiguous, l.Kind)
		err := l.Err(a.DocumentNumber, nil)

		var amb *domain.AmbiguousDocumentNumberError
		require.True(t, errors.As(err, &amb))
		assert.Equal(t, []domain.OrgUnit{domain.OrgUnitPrimary, domain.OrgUnitSecondary}, amb.OrgUnits)
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("hint disambiguates", func(t *testing.T) {
		hint := domain.OrgUnitSecondary
		l := domain.ResolveDocumentLookup([]domain.FiscalRecord{a, b}, &hint)
		assert.Equal(t, domain.LookupUnique, l.Kind)
		assert.Equal(t, domain.OrgUnitSecondary, l.Record.OrgUnit)
	})

	t.Run("hint cannot disambiguate corrupted data", func(t *testing.T) {
		c := sampleRecord()
		hint := domain.OrgUnitPrimary
		l := domain.ResolveDocumentLookup([]domain.FiscalRecord{a, c, b}, &hint)
		assert.Equal(t, domain.LookupAmbiguous, l.Kind)
		assert.Contains(t, l.Err(a.DocumentNumber, &hint).Error(), "not unique for org unit PRIMARY")
	})
}

func TestErrorCategories(t *testing.T) {
	assert.True(t, domain.IsValidation(&domain.FilterError{Field: "month", Value: 13, Reason: "must be between 1 and 12"}))
	assert.True(t, domain.IsConflict(&domain.DuplicateInvoiceError{PayerTaxID: "1", InvoiceNumber: 2, OrgUnit: domain.OrgUnitPrimary}))
	assert.True(t, domain.IsNotFound(&domain.NoMatchError{Criteria: "x"}))
	assert.True(t, domain.IsDomainLookup(&domain.FiscalCodeError{FiscalCode: "1234"}))
	assert.False(t, domain.IsConflict(domain.ErrRecordNotFound))
}
