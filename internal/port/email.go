package port

import (
	"context"

	"darf/internal/domain"
)

// MonthlySummary is the content of the monthly withholding notification.
type MonthlySummary struct {
	Year       int
	Month      int
	Partitions []domain.PartitionTotals
	Archives   []ArchiveLink
}

// ArchiveLink points at the archived CSV export of one org unit.
type ArchiveLink struct {
	OrgUnit domain.OrgUnit
	URL     string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendMonthlySummary(ctx context.Context, to []string, summary MonthlySummary) error
}
