package port

import (
	"context"

	"runsheet/internal/domain"
)

// CompletionNotifier is told once the last row of a session has been approved.
type CompletionNotifier interface {
	OnComplete(ctx context.Context, summary *domain.OwnershipSummary) error
}
