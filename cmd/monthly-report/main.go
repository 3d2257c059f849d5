// Command monthly-report totals, per org unit, the withholdings of the paid
// records invoiced in a month, archives the CSV exports and emails the summary. Without flags it reports
// the month before the current one.
// Usage: go run ./cmd/monthly-report [-year 2024 -month 3]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"darf/internal/app"
	"darf/internal/config"
	"darf/internal/logger"
	"darf/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	year := flag.Int("year", 0, "report year (requires -month)")
	month := flag.Int("month", 0, "report month 1-12 (requires -year)")
	flag.Parse()
	if (*year == 0) != (*month == 0) {
		return fmt.Errorf("-year and -month must be given together")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	a, err := app.New(cfg, zl)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	var report *service.MonthlyReport
	if *year != 0 {
		report, err = a.Reports.Monthly(ctx, *year, *month)
	} else {
		report, err = a.Reports.PreviousMonth(ctx)
	}
	if err != nil {
		return fmt.Errorf("monthly report: %w", err)
	}

	for _, p := range report.Partitions {
		zl.Info("partition totals",
			zap.String("org_unit", string(p.OrgUnit)),
			zap.Int64("records", p.Count),
			zap.String("total_withheld", p.TotalWithheld.StringFixed(2)),
		)
	}
	for _, ar := range report.Archives {
		zl.Info("archived", zap.String("key", ar.Key), zap.String("url", ar.URL))
	}
	zl.Info("monthly report finished", zap.Int("year", report.Year), zap.Int("month", report.Month))
	return nil
}
