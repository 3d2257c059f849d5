package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"darf/internal/config"
	"darf/internal/csvexport"
	"darf/internal/domain"
	"darf/internal/logger"
	"darf/internal/port"
	"darf/internal/xlsxexport"
)

const exportBatchSize = 500

// ErrStorageNotConfigured is returned by ArchiveMonthly when no bucket is set up.
var ErrStorageNotConfigured = errors.New("object storage is not configured")

// ArchiveResult describes an uploaded monthly export.
type ArchiveResult struct {
	OrgUnit domain.OrgUnit `json:"org_unit"`
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	Key     string         `json:"key"`
	Records int            `json:"records"`
	URL     string         `json:"url"`
}

// ExportService writes records and reports to CSV, xlsx and the archive bucket.
type ExportService interface {
	WriteCSV(ctx context.Context, criteria FilterCriteria, w io.Writer) (int, error)
	WriteAnnualWorkbook(ctx context.Context, year int, w io.Writer) error
	ArchiveMonthly(ctx context.Context, year, month int, orgUnit domain.OrgUnit) (*ArchiveResult, error)
}

type exportService struct {
	store      port.RecordStore
	aggregates AggregateService
	storage    port.ObjectStorage
	s3Cfg      config.S3Config
	log        *zap.Logger
}

// NewExportService creates a new ExportService. storage may be nil, in which
// case ArchiveMonthly is unavailable.
func NewExportService(
	store port.RecordStore,
	aggregates AggregateService,
	storage port.ObjectStorage,
	s3Cfg config.S3Config,
	log *zap.Logger,
) ExportService {
	return &exportService{
		store:      store,
		aggregates: aggregates,
		storage:    storage,
		s3Cfg:      s3Cfg,
		log:        logger.OrNop(log),
	}
}

func (s *exportService) WriteCSV(ctx context.Context, criteria FilterCriteria, w io.Writer) (int, error) {
	filter, err := BuildFilter(criteria)
	if err != nil {
		return 0, err
	}
	return s.writeFiltered(ctx, filter, w)
}

func (s *exportService) WriteAnnualWorkbook(ctx context.Context, year int, w io.Writer) error {
	report, err := s.aggregates.Annual(ctx, year)
	if err != nil {
		return err
	}
	return xlsxexport.WriteAnnual(w, report)
}

func (s *exportService) ArchiveMonthly(ctx context.Context, year, month int, orgUnit domain.OrgUnit) (*ArchiveResult, error) {
	if s.storage == nil {
		return nil, ErrStorageNotConfigured
	}
	if err := checkPeriodRanges(&year, &month, nil, nil); err != nil {
		return nil, err
	}
	if !orgUnit.Valid() {
		return nil, &domain.OrgUnitError{Value: string(orgUnit)}
	}

	// same record set as TotalWithheld for the period
	paid := domain.StatusPaid
	filter := domain.RecordFilter{Status: &paid, OrgUnit: &orgUnit, InvoiceYear: &year, InvoiceMonth: &month}

	var buf bytes.Buffer
	count, err := s.writeFiltered(ctx, filter, &buf)
	if err != nil {
		return nil, err
	}

	key := csvexport.ArchiveKey(orgUnit, year, month)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        &buf,
		ContentType: "text/csv; charset=utf-8",
	}); err != nil {
		return nil, fmt.Errorf("exportService.ArchiveMonthly: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("exportService.ArchiveMonthly: %w", err)
	}

	s.log.Info("exportService.ArchiveMonthly: archive uploaded",
		zap.String("key", key),
		zap.Int("records", count))
	return &ArchiveResult{OrgUnit: orgUnit, Year: year, Month: month, Key: key, Records: count, URL: url}, nil
}

// writeFiltered streams every record matching filter as CSV, in batches.
func (s *exportService) writeFiltered(ctx context.Context, filter domain.RecordFilter, w io.Writer) (int, error) {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return 0, fmt.Errorf("exportService: writing BOM: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return 0, fmt.Errorf("exportService: writing header: %w", err)
	}

	written := 0
	for offset := 0; ; offset += exportBatchSize {
		page, err := s.store.FindPage(ctx, filter, domain.PageRequest{
			Offset: offset,
			Limit:  exportBatchSize,
			Sort:   domain.SortDocumentNumberAsc,
		})
		if err != nil {
			return written, err
		}
		if err := cw.WriteRecords(page.Records); err != nil {
			return written, fmt.Errorf("exportService: writing rows: %w", err)
		}
		written += len(page.Records)
		if len(page.Records) < exportBatchSize || written >= page.Total {
			break
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, fmt.Errorf("exportService: flushing csv: %w", err)
	}
	return written, nil
}
