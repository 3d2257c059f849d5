package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"darf/internal/clock"
	"darf/internal/domain"
	"darf/internal/logger"
	"darf/internal/port"
)

// MonthlyReport is the outcome of a monthly report run.
type MonthlyReport struct {
	Year       int
	Month      int
	Partitions []domain.PartitionTotals
	Archives   []ArchiveResult
}

// ReportService produces the monthly withholding report: totals per org unit,
// archived CSV exports and a summary email.
type ReportService interface {
	Monthly(ctx context.Context, year, month int) (*MonthlyReport, error)
	PreviousMonth(ctx context.Context) (*MonthlyReport, error)
}

type reportService struct {
	aggregates AggregateService
	exports    ExportService
	sender     port.EmailSender
	recipients []string
	clock      clock.Clock
	log        *zap.Logger
}

// NewReportService creates a new ReportService. exports may be nil to skip archiving.
func NewReportService(
	aggregates AggregateService,
	exports ExportService,
	sender port.EmailSender,
	recipients []string,
	clk clock.Clock,
	log *zap.Logger,
) ReportService {
	if clk == nil {
		clk = clock.Real()
	}
	return &reportService{
		aggregates: aggregates,
		exports:    exports,
		sender:     sender,
		recipients: recipients,
		clock:      clk,
		log:        logger.OrNop(log),
	}
}

func (s *reportService) PreviousMonth(ctx context.Context) (*MonthlyReport, error) {
	today := clock.Today(s.clock)
	prev := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return s.Monthly(ctx, prev.Year(), int(prev.Month()))
}

func (s *reportService) Monthly(ctx context.Context, year, month int) (*MonthlyReport, error) {
	report := &MonthlyReport{Year: year, Month: month}
	for _, u := range domain.OrgUnits() {
		totals, err := s.aggregates.TotalWithheld(ctx, year, month, u)
		if err != nil {
			return nil, err
		}
		report.Partitions = append(report.Partitions, *totals)

		if s.exports == nil {
			continue
		}
		archive, err := s.exports.ArchiveMonthly(ctx, year, month, u)
		if errors.Is(err, ErrStorageNotConfigured) {
			continue
		}
		if err != nil {
			return nil, err
		}
		report.Archives = append(report.Archives, *archive)
	}

	summary := port.MonthlySummary{Year: year, Month: month, Partitions: report.Partitions}
	for _, a := range report.Archives {
		summary.Archives = append(summary.Archives, port.ArchiveLink{OrgUnit: a.OrgUnit, URL: a.URL})
	}
	if s.sender != nil && len(s.recipients) > 0 {
		if err := s.sender.SendMonthlySummary(ctx, s.recipients, summary); err != nil {
			return nil, err
		}
	}

	s.log.Info("reportService.Monthly: report produced",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("archives", len(report.Archives)))
	return report, nil
}
