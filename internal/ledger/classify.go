package ledger

import (
	"strings"

	"runsheet/internal/clause"
	"runsheet/internal/domain"
)

// RuleKind names the allocation rule an analyzed document is routed to.
type RuleKind string

const (
	RuleNone        RuleKind = "none"
	RulePatent      RuleKind = "patent"
	RuleMineralDeed RuleKind = "mineral_deed"
	RuleSurfaceDeed RuleKind = "surface_deed"
	RuleGeneralDeed RuleKind = "general_deed"
)

// Classify routes an analysis to its allocation rule. Documents without an ownership
// change or without grantees route to RuleNone.
func Classify(a *domain.Analysis) RuleKind {
	if a == nil || !a.OwnershipChange || len(nonEmpty(a.Grantees)) == 0 {
		return RuleNone
	}
	switch {
	case a.DocumentType.IsPatent():
		return RulePatent
	case a.DocumentType.IsMineralDeed():
		return RuleMineralDeed
	case clause.IsSurfaceOnly(a.Description):
		return RuleSurfaceDeed
	default:
		return RuleGeneralDeed
	}
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
