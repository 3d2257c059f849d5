package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"darf/internal/domain"
	"darf/internal/logger"
	"darf/internal/metrics"
	"darf/internal/port"
)

// AggregateCriteria holds the optional aggregation inputs. A nil OrgUnit
// aggregates both units separately.
type AggregateCriteria struct {
	OrgUnit      *domain.OrgUnit
	InvoiceYear  *int
	InvoiceMonth *int
	PaymentYear  *int
	PaymentMonth *int
	Status       *domain.RecordStatus
}

// AggregateService computes per-org-unit totals over filtered records.
type AggregateService interface {
	Aggregate(ctx context.Context, criteria AggregateCriteria) (*domain.AggregateReport, error)
	// Annual totals each invoice month of year over records of any status.
	Annual(ctx context.Context, year int) (*domain.AnnualReport, error)
	// TotalWithheld totals the PAID records of orgUnit invoiced in year/month.
	TotalWithheld(ctx context.Context, year, month int, orgUnit domain.OrgUnit) (*domain.PartitionTotals, error)
}

type aggregateService struct {
	store   port.RecordStore
	cache   port.AggregateCache
	ttl     time.Duration
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewAggregateService creates a new AggregateService. A nil cache disables caching.
func NewAggregateService(
	store port.RecordStore,
	cache port.AggregateCache,
	ttl time.Duration,
	m *metrics.Metrics,
	log *zap.Logger,
) AggregateService {
	return &aggregateService{store: store, cache: cache, ttl: ttl, metrics: m, log: logger.OrNop(log)}
}

func (s *aggregateService) Aggregate(ctx context.Context, criteria AggregateCriteria) (*domain.AggregateReport, error) {
	if err := checkPeriodRanges(criteria.InvoiceYear, criteria.InvoiceMonth,
		criteria.PaymentYear, criteria.PaymentMonth); err != nil {
		return nil, err
	}

	filter := domain.RecordFilter{
		OrgUnit:      criteria.OrgUnit,
		Status:       criteria.Status,
		InvoiceYear:  criteria.InvoiceYear,
		InvoiceMonth: criteria.InvoiceMonth,
		PaymentYear:  criteria.PaymentYear,
		PaymentMonth: criteria.PaymentMonth,
	}

	key := "aggregate:" + aggregateKey(&criteria)
	var partitions []domain.PartitionTotals
	if version, hit := s.cached(ctx, key, &partitions); !hit {
		var err error
		partitions, err = s.partitions(ctx, filter, criteria.OrgUnit)
		if err != nil {
			return nil, err
		}
		s.remember(ctx, key, version, partitions)
	}

	if allEmpty(partitions) {
		s.metrics.IncEmptyQuery("aggregate")
		return nil, &domain.NoMatchError{Criteria: filter.Describe()}
	}

	report := &domain.AggregateReport{
		InvoiceYear:  criteria.InvoiceYear,
		InvoiceMonth: criteria.InvoiceMonth,
		PaymentYear:  criteria.PaymentYear,
		PaymentMonth: criteria.PaymentMonth,
		Status:       criteria.Status,
		Partitions:   partitions,
	}
	if criteria.InvoiceMonth != nil {
		report.InvoiceMonthName = domain.MonthName(*criteria.InvoiceMonth)
	}
	if criteria.PaymentMonth != nil {
		report.PaymentMonthName = domain.MonthName(*criteria.PaymentMonth)
	}
	return report, nil
}

func (s *aggregateService) Annual(ctx context.Context, year int) (*domain.AnnualReport, error) {
	if err := checkYear("year", &year); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("annual:%d", year)
	report := &domain.AnnualReport{Year: year}
	version, hit := s.cached(ctx, key, &report.Months)
	if hit {
		if len(report.Months) == 0 {
			return nil, annualNoMatch(year)
		}
		return report, nil
	}

	for month := 1; month <= 12; month++ {
		m := month
		filter := domain.RecordFilter{InvoiceYear: &year, InvoiceMonth: &m}
		partitions, err := s.partitions(ctx, filter, nil)
		if err != nil {
			return nil, err
		}
		if allEmpty(partitions) {
			continue
		}
		report.Months = append(report.Months, domain.MonthTotals{
			Month:      m,
			MonthName:  domain.MonthName(m),
			Partitions: partitions,
		})
	}
	s.remember(ctx, key, version, report.Months)

	if len(report.Months) == 0 {
		s.metrics.IncEmptyQuery("annual")
		return nil, annualNoMatch(year)
	}
	return report, nil
}

func (s *aggregateService) TotalWithheld(ctx context.Context, year, month int, orgUnit domain.OrgUnit) (*domain.PartitionTotals, error) {
	if err := checkPeriodRanges(&year, &month, nil, nil); err != nil {
		return nil, err
	}
	if !orgUnit.Valid() {
		return nil, &domain.OrgUnitError{Value: string(orgUnit)}
	}

	paid := domain.StatusPaid
	filter := domain.RecordFilter{Status: &paid, OrgUnit: &orgUnit, InvoiceYear: &year, InvoiceMonth: &month}
	totals, err := s.store.FindAggregates(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &domain.PartitionTotals{OrgUnit: orgUnit, OrgUnitCode: orgUnit.Code(), Totals: *totals}, nil
}

// partitions aggregates filter per org unit: only the given one, or both.
func (s *aggregateService) partitions(ctx context.Context, filter domain.RecordFilter, orgUnit *domain.OrgUnit) ([]domain.PartitionTotals, error) {
	units := domain.OrgUnits()
	if orgUnit != nil {
		units = []domain.OrgUnit{*orgUnit}
	}

	out := make([]domain.PartitionTotals, 0, len(units))
	for _, u := range units {
		totals, err := s.store.FindAggregates(ctx, filter.WithOrgUnit(u))
		if err != nil {
			return nil, err
		}
		out = append(out, domain.PartitionTotals{OrgUnit: u, OrgUnitCode: u.Code(), Totals: *totals})
	}
	return out, nil
}

// cached decodes key into dst on a hit. The returned version must be passed
// to remember so a result computed across an invalidation is not stored as fresh.
func (s *aggregateService) cached(ctx context.Context, key string, dst interface{}) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	raw, version, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("aggregateService: cache read failed", zap.String("key", key), zap.Error(err))
		return version, false
	}
	s.metrics.IncCacheLookup(ok)
	if !ok {
		return version, false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("aggregateService: discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return version, false
	}
	return version, true
}

func (s *aggregateService) remember(ctx context.Context, key string, version int64, v interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("aggregateService: cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, version, raw, s.ttl); err != nil {
		s.log.Warn("aggregateService: cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func allEmpty(partitions []domain.PartitionTotals) bool {
	for i := range partitions {
		if partitions[i].Count > 0 {
			return false
		}
	}
	return true
}

func annualNoMatch(year int) error {
	return &domain.NoMatchError{Criteria: fmt.Sprintf("invoice year %d", year)}
}

func aggregateKey(c *AggregateCriteria) string {
	part := func(v *int) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprint(*v)
	}
	org, status := "-", "-"
	if c.OrgUnit != nil {
		org = string(*c.OrgUnit)
	}
	if c.Status != nil {
		status = string(*c.Status)
	}
	return fmt.Sprintf("%s:%s:%s:%s:%s:%s", org, status,
		part(c.InvoiceYear), part(c.InvoiceMonth), part(c.PaymentYear), part(c.PaymentMonth))
}
