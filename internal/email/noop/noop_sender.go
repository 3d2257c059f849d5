package noop

import (
	"context"

	"go.uber.org/zap"

	"darf/internal/email"
	"darf/internal/logger"
	"darf/internal/port"
)

type noopSender struct {
	log *zap.Logger
}

// NewNoopSender creates a no-op EmailSender that logs the summary instead of sending it.
func NewNoopSender(log *zap.Logger) port.EmailSender {
	return &noopSender{log: logger.OrNop(log)}
}

func (s *noopSender) SendMonthlySummary(_ context.Context, to []string, summary port.MonthlySummary) error {
	s.log.Info("[NOOP EMAIL] monthly summary",
		zap.Strings("to", to),
		zap.String("subject", email.SummarySubject(summary)),
		zap.String("body", email.SummaryText(summary)))
	return nil
}
