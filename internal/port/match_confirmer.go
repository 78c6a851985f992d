package port

import (
	"context"

	"runsheet/internal/domain"
)

// MatchConfirmer asks a person which candidate owner, if any, each grantee is.
// Returning a confirmation with no matches treats every grantee as a new owner.
type MatchConfirmer interface {
	Confirm(ctx context.Context, candidates []domain.GranteeMatches) (*domain.MatchConfirmation, error)
}
