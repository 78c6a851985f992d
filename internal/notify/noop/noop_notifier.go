package noop

import (
	"context"
	"log"

	"runsheet/internal/domain"
	"runsheet/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a CompletionNotifier that only logs the final summary.
func NewNoopNotifier() port.CompletionNotifier {
	return &noopNotifier{}
}

func (n *noopNotifier) OnComplete(_ context.Context, summary *domain.OwnershipSummary) error {
	log.Printf("[NOOP NOTIFY] Session %s (%s) complete: %d owners, %d unresolved transfers, surface %.4f%%, mineral %.4f%%",
		summary.SessionID, summary.Prospect, len(summary.Owners), len(summary.UnresolvedTransfers),
		summary.TotalSurfacePercentage, summary.TotalMineralPercentage)
	return nil
}
