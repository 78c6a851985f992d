package ledger

import (
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"runsheet/internal/domain"
	"runsheet/internal/names"
)

var (
	ownerNamespace   = uuid.MustParse("0b6f0c52-6a4e-4d0c-9a57-7f0a3c3e1d21")
	pendingNamespace = uuid.MustParse("5d2b8e9a-14c7-4f3b-8f8e-2c6d9b0a7e44")
)

// recipient is a resolved grantee: an existing owner by ID, or a name to find or create.
type recipient struct {
	name    string
	ownerID uuid.UUID
}

// resolveGrantees maps each grantee to an owner. Exact name or alias equality resolves
// directly. Anything weaker needs a decision from the confirmation; without one the
// candidates are returned and nothing is resolved.
func (l *Ledger) resolveGrantees(t *transition, grantees []string, conf *domain.MatchConfirmation) ([]recipient, []domain.GranteeMatches) {
	recipients := make([]recipient, 0, len(grantees))
	var candidates []domain.GranteeMatches

	for _, g := range grantees {
		matches := l.resolver.FindPotentialMatches(g, t.state.Owners)
		switch {
		case len(matches) == 0:
			recipients = append(recipients, recipient{name: g})
		case matches[0].Confidence == domain.MatchConfidenceHigh:
			recipients = append(recipients, recipient{name: g, ownerID: matches[0].OwnerID})
		case conf == nil:
			candidates = append(candidates, domain.GranteeMatches{GranteeName: g, Matches: matches})
		default:
			recipients = append(recipients, l.confirmed(t, g, matches, conf))
		}
	}
	if len(candidates) > 0 {
		return nil, candidates
	}
	return recipients, nil
}

// confirmed applies the caller's decision for one grantee, merging it into the chosen owner.
func (l *Ledger) confirmed(t *transition, grantee string, matches []domain.NameMatch, conf *domain.MatchConfirmation) recipient {
	choice, ok := lookupChoice(conf, grantee)
	if !ok || choice == "" {
		return recipient{name: grantee}
	}

	idx := -1
	for _, m := range matches {
		i := t.indexOf(m.OwnerID)
		if i < 0 {
			continue
		}
		// An earlier grantee of the same row may already have renamed the owner.
		if m.OwnerID.String() == choice || names.SameName(m.OwnerName, choice) || names.OwnerHasName(&t.state.Owners[i], choice) {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.warn("confirmed owner %q for grantee %q is not a candidate, adding as new owner", choice, grantee)
		return recipient{name: grantee}
	}

	o := &t.state.Owners[idx]
	if len(o.Aliases) == 0 {
		o.Aliases = []string{o.Name}
	}
	if !names.OwnerHasName(o, grantee) {
		o.Aliases = append(o.Aliases, grantee)
		o.Name = names.MergedName(o.Name, grantee)
	}
	return recipient{name: grantee, ownerID: o.ID}
}

func lookupChoice(conf *domain.MatchConfirmation, grantee string) (string, bool) {
	if v, ok := conf.Matches[grantee]; ok {
		return v, true
	}
	for k, v := range conf.Matches {
		if names.SameName(k, grantee) {
			return v, true
		}
	}
	return "", false
}

func (t *transition) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(t.state.Owners, func(o domain.Owner) bool { return o.ID == id })
}

// find returns the index of the owner identified by name or alias, or -1.
func (t *transition) find(name string) int {
	return findOwner(t.state, name)
}

func findOwner(state *domain.OngoingOwnership, name string) int {
	for i := range state.Owners {
		if names.OwnerHasName(&state.Owners[i], name) {
			return i
		}
	}
	return -1
}

func (t *transition) findOrCreate(name string) int {
	if idx := t.find(name); idx >= 0 {
		return idx
	}
	t.created++
	t.state.Owners = append(t.state.Owners, domain.Owner{
		ID:                 uuid.NewSHA1(ownerNamespace, []byte(t.seed+"\x00"+strconv.Itoa(t.created)+"\x00"+names.Normalize(name))),
		Name:               strings.TrimSpace(name),
		CurrentLeaseStatus: domain.OwnerLeaseUnknown,
	})
	return len(t.state.Owners) - 1
}

// credit adds surface and mineral points to a recipient and tags the acquiring document.
func (t *transition) credit(r recipient, surface, mineral float64, docRef string) {
	idx := -1
	if r.ownerID != uuid.Nil {
		idx = t.indexOf(r.ownerID)
	}
	if idx < 0 {
		idx = t.findOrCreate(r.name)
	}
	o := &t.state.Owners[idx]
	o.SurfacePercentage = clampPct(o.SurfacePercentage + surface)
	o.MineralPercentage = clampPct(o.MineralPercentage + mineral)
	o.AcquisitionDocument = docRef
}

func (t *transition) pendingID(grantor, grantee string) uuid.UUID {
	n := len(t.state.PendingTransfers)
	return uuid.NewSHA1(pendingNamespace, []byte(t.seed+"\x00"+strconv.Itoa(n)+"\x00"+grantor+"\x00"+grantee))
}

// applyLease records the row's lease status on the owner matching the first grantor,
// falling back to the first grantee.
func applyLease(t *transition, a *domain.Analysis) {
	if a.LeaseStatus == "" || a.LeaseStatus == domain.LeaseStatusNone {
		return
	}

	idx := -1
	if gs := nonEmpty(a.Grantors); len(gs) > 0 {
		idx = t.find(gs[0])
	}
	if idx < 0 {
		if gs := nonEmpty(a.Grantees); len(gs) > 0 {
			idx = t.find(gs[0])
		}
	}
	if idx < 0 {
		t.warn("no owner found for lease status %q", a.LeaseStatus)
		return
	}

	o := &t.state.Owners[idx]
	o.CurrentLeaseStatus = domain.OwnerLeaseStatusFor(a.LeaseStatus)
	if a.LeaseDetails != nil {
		ld := *a.LeaseDetails
		o.LeaseDetails = &ld
	}
}

// recompute drops owners with no remaining interest and refreshes totals and net acres.
func recompute(state *domain.OngoingOwnership) {
	kept := state.Owners[:0]
	var surface, mineral float64
	for _, o := range state.Owners {
		o.SurfacePercentage = clampPct(o.SurfacePercentage)
		o.MineralPercentage = clampPct(o.MineralPercentage)
		if o.SurfacePercentage == 0 && o.MineralPercentage == 0 {
			continue
		}
		o.NetSurfaceAcres = o.SurfacePercentage / 100 * state.TotalAcres
		o.NetMineralAcres = o.MineralPercentage / 100 * state.TotalAcres
		surface += o.SurfacePercentage
		mineral += o.MineralPercentage
		kept = append(kept, o)
	}
	state.Owners = kept
	state.TotalSurfacePercentage = surface
	state.TotalMineralPercentage = mineral
}
