// Package names generates name variants and scores candidate identity matches between
// grantees and existing owners. It only suggests matches; callers decide whether to merge.
package names

import (
	"strings"
	"unicode"

	"runsheet/internal/domain"
)

// AKASeparator joins an existing owner name and a confirmed alternate name.
const AKASeparator = " AKA "

// Resolver scores name matches using a nickname table.
type Resolver struct {
	nicknames table
}

// NewResolver creates a Resolver over the built-in nickname table plus any extra entries.
func NewResolver(extra ...map[string][]string) *Resolver {
	sources := append([]map[string][]string{defaultNicknames}, extra...)
	return &Resolver{nicknames: buildTable(sources...)}
}

// Normalize lowercases a name, replaces punctuation with spaces and collapses whitespace.
func Normalize(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '&' {
			return unicode.ToLower(r)
		}
		return ' '
	}, name)
	return strings.Join(strings.Fields(mapped), " ")
}

// SameName reports whether two names are identical after normalization.
func SameName(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}

// OwnerHasName reports whether name identifies the owner by its display name or one of its aliases.
func OwnerHasName(o *domain.Owner, name string) bool {
	if SameName(o.Name, name) {
		return true
	}
	for _, a := range o.Aliases {
		if SameName(a, name) {
			return true
		}
	}
	return false
}

// Variations returns the normalized name, a first+last variant when the name has more than
// two tokens, and nickname substitutions of both in either direction.
func (r *Resolver) Variations(name string) []string {
	base := Normalize(name)
	if base == "" {
		return nil
	}

	seen := map[string]struct{}{}
	var out []string
	add := func(v string) {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	roots := []string{base}
	if fl, ok := firstLast(base); ok {
		roots = append(roots, fl)
	}
	for _, root := range roots {
		add(root)
		for _, v := range r.nicknameVariants(root) {
			add(v)
		}
	}
	return out
}

// FindPotentialMatches compares newName against every owner (and its aliases) and returns at
// most one match per owner, highest confidence first.
func (r *Resolver) FindPotentialMatches(newName string, owners []domain.Owner) []domain.NameMatch {
	nn := Normalize(newName)
	if nn == "" {
		return nil
	}

	var high, medium []domain.NameMatch
	for i := range owners {
		o := &owners[i]
		best, ok := r.bestMatch(nn, o)
		if !ok {
			continue
		}
		if best.Confidence == domain.MatchConfidenceHigh {
			high = append(high, best)
		} else {
			medium = append(medium, best)
		}
	}
	return append(high, medium...)
}

func (r *Resolver) bestMatch(nn string, o *domain.Owner) (domain.NameMatch, bool) {
	candidates := append([]string{o.Name}, o.Aliases...)
	var found *domain.NameMatch
	for _, c := range candidates {
		conf, reason, ok := r.compare(nn, Normalize(c))
		if !ok {
			continue
		}
		m := domain.NameMatch{OwnerID: o.ID, OwnerName: o.Name, Confidence: conf, Reason: reason}
		if conf == domain.MatchConfidenceHigh {
			return m, true
		}
		if found == nil {
			found = &m
		}
	}
	if found == nil {
		return domain.NameMatch{}, false
	}
	return *found, true
}

// compare classifies two normalized names.
func (r *Resolver) compare(a, b string) (domain.MatchConfidence, string, bool) {
	if a == "" || b == "" {
		return "", "", false
	}
	if a == b {
		return domain.MatchConfidenceHigh, "exact match", true
	}

	ta, tb := strings.Fields(a), strings.Fields(b)
	countMismatch := len(ta) != len(tb)
	firstA, lastA := ta[0], ta[len(ta)-1]
	firstB, lastB := tb[0], tb[len(tb)-1]

	if countMismatch && firstA == firstB && lastA == lastB {
		return domain.MatchConfidenceMedium, "missing middle name/initial", true
	}

	if intersects(r.nicknameVariants(a), r.nicknameVariants(b), a, b) {
		return domain.MatchConfidenceMedium, "nickname variation", true
	}
	if countMismatch {
		fa, _ := firstLast(a)
		fb, _ := firstLast(b)
		if fa == "" {
			fa = a
		}
		if fb == "" {
			fb = b
		}
		if intersects(r.nicknameVariants(fa), r.nicknameVariants(fb), fa, fb) {
			return domain.MatchConfidenceMedium, "nickname variation with missing middle name", true
		}
	}

	if len(ta) >= 2 && len(tb) >= 2 && lastA != lastB && r.sameGivenName(firstA, firstB) {
		return domain.MatchConfidenceMedium, "possible name change", true
	}
	return "", "", false
}

func (r *Resolver) sameGivenName(a, b string) bool {
	if a == b {
		return true
	}
	_, ok := r.nicknames[a][b]
	return ok
}

// nicknameVariants substitutes each token with each of its nickname equivalents, one at a time.
func (r *Resolver) nicknameVariants(normalized string) []string {
	tokens := strings.Fields(normalized)
	var out []string
	for i, tok := range tokens {
		for _, eq := range r.nicknames.equivalents(tok) {
			sub := append([]string(nil), tokens...)
			sub[i] = eq
			out = append(out, strings.Join(sub, " "))
		}
	}
	return out
}

func firstLast(normalized string) (string, bool) {
	tokens := strings.Fields(normalized)
	if len(tokens) <= 2 {
		return "", false
	}
	return tokens[0] + " " + tokens[len(tokens)-1], true
}

func intersects(va, vb []string, a, b string) bool {
	set := map[string]struct{}{a: {}}
	for _, v := range va {
		set[v] = struct{}{}
	}
	if _, ok := set[b]; ok {
		return true
	}
	for _, v := range vb {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

// MergedName returns the display name of an owner after a confirmed match with alternate.
func MergedName(existing, alternate string) string {
	if SameName(existing, alternate) {
		return existing
	}
	return existing + AKASeparator + alternate
}
