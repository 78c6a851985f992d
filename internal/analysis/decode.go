package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"runsheet/internal/domain"
)

var validate = validator.New()

// DecodeAnalysis parses a provider's JSON text into an Analysis and validates it.
// Markdown code fences around the object are tolerated.
func DecodeAnalysis(text string) (*domain.Analysis, json.RawMessage, error) {
	raw := stripFences(text)

	var a domain.Analysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, nil, fmt.Errorf("%w: parsing JSON: %v (raw: %s)", domain.ErrInvalidAnalysis, err, truncate(raw, 500))
	}
	if err := Validate(&a); err != nil {
		return nil, nil, err
	}
	return &a, json.RawMessage(raw), nil
}

// Validate normalizes and checks an Analysis, whether it came from a provider or a person.
func Validate(a *domain.Analysis) error {
	a.Grantors = trimAll(a.Grantors)
	a.Grantees = trimAll(a.Grantees)
	a.DocumentType = domain.DocumentType(strings.TrimSpace(string(a.DocumentType)))
	a.LeaseStatus = domain.LeaseStatus(strings.ToLower(strings.TrimSpace(string(a.LeaseStatus))))
	if a.LeaseStatus == "" {
		a.LeaseStatus = domain.LeaseStatusNone
	}

	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidAnalysis, err)
	}
	if a.OwnershipChange && len(a.Grantees) == 0 {
		return fmt.Errorf("%w: ownership change without grantees", domain.ErrInvalidAnalysis)
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
