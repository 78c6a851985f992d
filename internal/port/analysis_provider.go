package port

import (
	"context"
	"encoding/json"

	"runsheet/internal/domain"
)

// AnalysisRequest carries one row and the ledger context it is read against.
type AnalysisRequest struct {
	RowContent       string
	RowNumber        int
	Prospect         string
	TotalAcres       float64
	CurrentOwnership domain.OngoingOwnership
}

// AnalysisOutput contains the structured reading returned by a provider.
type AnalysisOutput struct {
	Analysis   *domain.Analysis
	Raw        json.RawMessage
	ModelUsed  string
	PromptUsed string
}

// AnalysisProvider abstracts the external call that turns row text into an Analysis.
type AnalysisProvider interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisOutput, error)
}
