// Command import-records loads fiscal records from an Excel workbook.
// The first sheet must carry a header row followed by one record per row with
// columns: org unit, document number, payer tax id, invoice number,
// invoice date, payment date, income nature, fiscal code, gross amount.
// Usage: go run ./cmd/import-records -file records.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"darf/internal/app"
	"darf/internal/config"
	"darf/internal/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	path := flag.String("file", "", "path to the .xlsx workbook")
	sheet := flag.String("sheet", "", "sheet name (default: first sheet)")
	flag.Parse()
	if *path == "" {
		return fmt.Errorf("-file is required")
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

	f, err := excelize.OpenFile(*path, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := *sheet
	if name == "" {
		name = f.GetSheetName(0)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", name, err)
	}

	a, err := app.New(cfg, zl)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	var imported, failed int
	for i := 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}
		line := i + 1
		input, err := parseRow(rows[i])
		if err != nil {
			failed++
			zl.Warn("skipping row", zap.Int("row", line), zap.Error(err))
			continue
		}
		rec, err := a.Records.Create(ctx, input)
		if err != nil {
			failed++
			zl.Warn("row rejected", zap.Int("row", line), zap.String("document_number", input.DocumentNumber), zap.Error(err))
			continue
		}
		imported++
		zl.Debug("row imported", zap.Int("row", line), zap.String("id", rec.ID.String()))
	}

	zl.Info("import finished", zap.String("file", *path), zap.Int("imported", imported), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d rows failed", failed, imported+failed)
	}
	return nil
}
