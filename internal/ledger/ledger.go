// Package ledger applies analyzed conveyances to an ownership ledger. Every transition is
// pure: Apply works on a deep copy of the prior state and never performs I/O.
package ledger

import (
	"fmt"
	"log"
	"slices"
	"strconv"

	"runsheet/internal/clause"
	"runsheet/internal/domain"
	"runsheet/internal/names"
)

const (
	// DefaultAcres is used for a Patent row when neither the ledger nor the analysis knows the tract size.
	DefaultAcres = 80.0
	// DefaultPatentGrantor holds reserved minerals on a Patent that names no grantor.
	DefaultPatentGrantor = "USA"

	epsilon = 1e-9
)

// Config tunes ledger behaviour.
type Config struct {
	DefaultAcres         float64
	DefaultPatentGrantor string
}

// Ledger applies analyses to ownership state.
type Ledger struct {
	cfg      Config
	resolver *names.Resolver
}

// New creates a Ledger. A nil resolver uses the built-in nickname table.
func New(cfg Config, resolver *names.Resolver) *Ledger {
	if cfg.DefaultAcres <= 0 {
		cfg.DefaultAcres = DefaultAcres
	}
	if cfg.DefaultPatentGrantor == "" {
		cfg.DefaultPatentGrantor = DefaultPatentGrantor
	}
	if resolver == nil {
		resolver = names.NewResolver()
	}
	return &Ledger{cfg: cfg, resolver: resolver}
}

// ApplyInput is one row to apply.
type ApplyInput struct {
	Analysis   *domain.Analysis
	RowNumber  int
	TotalAcres float64
	// Key identifies the row for idempotency. Defaults to the row number.
	Key string
	// Confirmation answers candidate name matches. Nil means no decision has been made.
	Confirmation *domain.MatchConfirmation
}

// ApplyResult is the outcome of Apply.
type ApplyResult struct {
	State             domain.OngoingOwnership
	NeedsConfirmation bool
	Candidates        []domain.GranteeMatches
	Duplicate         bool
	Warnings          []string
}

// transition carries the mutable copy and bookkeeping of one Apply call.
type transition struct {
	state    *domain.OngoingOwnership
	row      int
	seed     string
	created  int
	warnings []string
}

func (t *transition) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("ledger.Apply: row %d: %s", t.row, msg)
	t.warnings = append(t.warnings, msg)
}

// Apply produces the ledger state that follows prior once in.Analysis is applied.
// When grantees have unconfirmed candidate matches the prior state is returned
// unchanged with NeedsConfirmation set.
func (l *Ledger) Apply(prior domain.OngoingOwnership, in ApplyInput) (*ApplyResult, error) {
	if in.Analysis == nil {
		return nil, fmt.Errorf("ledger.Apply: %w: missing analysis", domain.ErrInvalidAnalysis)
	}
	if in.TotalAcres < 0 {
		return nil, fmt.Errorf("ledger.Apply: %w: negative total acres", domain.ErrInvalidAnalysis)
	}

	key := in.Key
	if key == "" && in.RowNumber > 0 {
		key = "row-" + strconv.Itoa(in.RowNumber)
	}

	if key != "" && slices.Contains(prior.AppliedRows, key) {
		return &ApplyResult{State: prior.Clone(), Duplicate: true}, nil
	}
	state := prior.Clone()
	if in.TotalAcres > 0 {
		state.TotalAcres = in.TotalAcres
	}

	a := in.Analysis
	t := &transition{state: &state, row: in.RowNumber, seed: key}
	kind := Classify(a)

	var recipients []recipient
	if kind != RuleNone {
		var candidates []domain.GranteeMatches
		recipients, candidates = l.resolveGrantees(t, nonEmpty(a.Grantees), in.Confirmation)
		if len(candidates) > 0 {
			return &ApplyResult{State: prior.Clone(), NeedsConfirmation: true, Candidates: candidates}, nil
		}
	}

	docRef := a.DocumentReference()
	if docRef == "" {
		docRef = "Row " + strconv.Itoa(in.RowNumber)
	}

	switch kind {
	case RulePatent:
		l.applyPatent(t, a, recipients, docRef)
	case RuleMineralDeed:
		l.applySingleEstate(t, a, recipients, docRef, domain.TransferMineralOnly)
	case RuleSurfaceDeed:
		l.applySingleEstate(t, a, recipients, docRef, domain.TransferSurfaceOnly)
	case RuleGeneralDeed:
		if !a.DocumentType.IsKnown() {
			t.warn("document type %q not recognised, applying general deed rules", a.DocumentType)
		}
		l.applyGeneral(t, a, recipients, docRef)
	}

	applyLease(t, a)
	l.resolvePending(t)
	recompute(t.state)

	state.LastUpdatedRow = in.RowNumber
	if key != "" {
		state.AppliedRows = append(state.AppliedRows, key)
	}
	return &ApplyResult{State: state, Warnings: t.warnings}, nil
}

// applyPatent establishes original title. Grantees share the surface; minerals follow
// unless the description reserves them, in which case the grantor keeps them.
func (l *Ledger) applyPatent(t *transition, a *domain.Analysis, recipients []recipient, docRef string) {
	if t.state.TotalAcres <= 0 {
		acres := a.Acreage
		if acres <= 0 {
			acres = l.cfg.DefaultAcres
		}
		t.warn("total acres unknown, using %.2f", acres)
		t.state.TotalAcres = acres
	}

	reserved := clause.Match(a.Description).Pattern != ""
	surface := splitShares(100, len(recipients), a.PercentageChange)
	for i, r := range recipients {
		mineral := surface[i]
		if reserved {
			mineral = 0
		}
		t.credit(r, surface[i], mineral, docRef)
	}

	if reserved {
		grantor := l.cfg.DefaultPatentGrantor
		if gs := nonEmpty(a.Grantors); len(gs) > 0 {
			grantor = gs[0]
		}
		idx := t.findOrCreate(grantor)
		t.state.Owners[idx].MineralPercentage = 100
		t.state.Owners[idx].AcquisitionDocument = docRef
	}
}

// applySingleEstate moves one estate (mineral or surface) from each grantor to the grantees,
// leaving the other estate untouched.
func (l *Ledger) applySingleEstate(t *transition, a *domain.Analysis, recipients []recipient, docRef string, kind domain.TransferType) {
	for _, grantor := range nonEmpty(a.Grantors) {
		idx := t.find(grantor)
		if idx < 0 {
			l.enqueue(t, a, grantor, recipients, docRef, kind, 0)
			continue
		}

		o := &t.state.Owners[idx]
		available := o.MineralPercentage
		if kind == domain.TransferSurfaceOnly {
			available = o.SurfacePercentage
		}
		shares := splitShares(available, len(recipients), a.PercentageChange)
		moved := sum(shares)
		if kind == domain.TransferSurfaceOnly {
			o.SurfacePercentage = clampPct(o.SurfacePercentage - moved)
		} else {
			o.MineralPercentage = clampPct(o.MineralPercentage - moved)
		}

		for i, r := range recipients {
			if kind == domain.TransferSurfaceOnly {
				t.credit(r, shares[i], 0, docRef)
			} else {
				t.credit(r, 0, shares[i], docRef)
			}
		}
	}
}

// applyGeneral moves surface and mineral from each grantor to the grantees. The grantor
// keeps the reserved fraction of its prior mineral share.
func (l *Ledger) applyGeneral(t *transition, a *domain.Analysis, recipients []recipient, docRef string) {
	res := clause.Match(a.Description)
	if res.Ambiguous {
		t.warn("description matches several reservation phrasings, using %q (%.4g%%)", res.Pattern, res.Percentage)
	}

	for _, grantor := range nonEmpty(a.Grantors) {
		idx := t.find(grantor)
		if idx < 0 {
			l.enqueue(t, a, grantor, recipients, docRef, domain.TransferFull, res.Percentage)
			continue
		}

		o := &t.state.Owners[idx]
		kept := o.MineralPercentage * res.Percentage / 100
		surface := splitShares(o.SurfacePercentage, len(recipients), a.PercentageChange)
		mineral := splitShares(o.MineralPercentage-kept, len(recipients), a.PercentageChange)
		o.SurfacePercentage = clampPct(o.SurfacePercentage - sum(surface))
		o.MineralPercentage = clampPct(o.MineralPercentage - sum(mineral))

		for i, r := range recipients {
			t.credit(r, surface[i], mineral[i], docRef)
		}
	}
}

// enqueue records one pending transfer per grantee for a grantor that is not yet an owner.
func (l *Ledger) enqueue(t *transition, a *domain.Analysis, grantor string, recipients []recipient, docRef string, kind domain.TransferType, reserved float64) {
	share := 100 / float64(len(recipients))
	for _, r := range recipients {
		p := domain.PendingTransfer{
			ID:                        t.pendingID(grantor, r.name),
			GrantorName:               grantor,
			GranteeName:               r.name,
			DocumentReference:         docRef,
			RowIndex:                  t.row,
			TransferType:              kind,
			ReservedMineralPercentage: reserved,
		}
		if a.PercentageChange != nil {
			pc := *a.PercentageChange
			p.PercentageChange = &pc
		}
		switch kind {
		case domain.TransferMineralOnly:
			p.MineralPercentage = share
		case domain.TransferSurfaceOnly:
			p.SurfacePercentage = share
		default:
			p.SurfacePercentage = share
			p.MineralPercentage = share
		}
		t.state.PendingTransfers = append(t.state.PendingTransfers, p)
	}
}

// splitShares divides available among n grantees, equally unless override gives the
// points each grantee receives. Overrides are capped at what is left.
func splitShares(available float64, n int, override *float64) []float64 {
	out := make([]float64, n)
	if n == 0 || available <= 0 {
		return out
	}
	if override == nil {
		each := available / float64(n)
		for i := range out {
			out[i] = each
		}
		return out
	}
	remaining := available
	for i := range out {
		amt := min(*override, remaining)
		out[i] = amt
		remaining -= amt
	}
	return out
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

func clampPct(v float64) float64 {
	switch {
	case v < epsilon:
		return 0
	case v > 100:
		return 100
	}
	return v
}
