// Package clause extracts mineral reservation fractions and estate qualifiers from
// free-text conveyance descriptions. It is a heuristic, not a legal parser.
package clause

import (
	"regexp"
	"strconv"
)

// Pattern is one reservation phrasing the parser recognises.
type Pattern struct {
	Name string
	re   *regexp.Regexp
}

// Patterns is the fixed priority order in which reservation phrasings are tried.
// The first pattern that matches decides the result.
var Patterns = []Pattern{
	{Name: "reserving", re: regexp.MustCompile(`(?i)\breserving\b[^.;]*?(\d+)\s*/\s*(\d+)[^.;]*?\bmineral`)},
	{Name: "except", re: regexp.MustCompile(`(?i)\bexcept(?:ing)?\b[^.;]*?(\d+)\s*/\s*(\d+)[^.;]*?\bmineral`)},
	{Name: "saving", re: regexp.MustCompile(`(?i)\bsaving\b[^.;]*?(\d+)\s*/\s*(\d+)[^.;]*?\bmineral`)},
	{Name: "mineral_reserved", re: regexp.MustCompile(`(?i)\bmineral[^.;]*?(\d+)\s*/\s*(\d+)[^.;]*?\breserved\b`)},
	{Name: "undivided_reserved", re: regexp.MustCompile(`(?i)\bundivided\s+(\d+)\s*/\s*(\d+)[^.;]*?\bmineral[^.;]*?\breserved\b`)},
}

var surfaceOnly = regexp.MustCompile(`(?i)\bsurface\s+(?:estate\s+|rights?\s+)?only\b|\bonly\s+the\s+surface\b|\bsurface\s+estate\s+solely\b`)

// Result describes how a description was read.
type Result struct {
	// Percentage is the reserved share of the grantor's mineral interest, 0-100.
	Percentage float64
	// Pattern names the winning pattern, empty when nothing matched.
	Pattern string
	// Ambiguous is set when lower-priority patterns also matched with a different fraction.
	Ambiguous bool
}

// Match runs every pattern in priority order and reports the first match.
func Match(description string) Result {
	var res Result
	matched := false
	for _, p := range Patterns {
		m := p.re.FindStringSubmatch(description)
		if m == nil {
			continue
		}
		pct, ok := fraction(m[1], m[2])
		if !ok {
			continue
		}
		if !matched {
			res = Result{Percentage: pct, Pattern: p.Name}
			matched = true
			continue
		}
		if pct != res.Percentage {
			res.Ambiguous = true
		}
	}
	return res
}

// ReservedMineralPercentage returns the reserved fraction as a percentage, or 0 when no
// reservation phrasing is found.
func ReservedMineralPercentage(description string) float64 {
	return Match(description).Percentage
}

// IsSurfaceOnly reports whether the description limits the conveyance to the surface estate.
func IsSurfaceOnly(description string) bool {
	return surfaceOnly.MatchString(description)
}

func fraction(num, den string) (float64, bool) {
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	pct := n / d * 100
	if pct > 100 {
		pct = 100
	}
	return pct, true
}
