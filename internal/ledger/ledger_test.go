package ledger_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runsheet/internal/domain"
	"runsheet/internal/ledger"
)

const delta = 1e-9

func newLedger() *ledger.Ledger {
	return ledger.New(ledger.Config{}, nil)
}

func patent(grantees ...string) *domain.Analysis {
	return &domain.Analysis{
		DocumentType:    domain.DocumentTypePatent,
		DocumentNumber:  "P-1",
		Grantors:        []string{"USA"},
		Grantees:        grantees,
		OwnershipChange: true,
		LeaseStatus:     domain.LeaseStatusNone,
	}
}

func deed(docType domain.DocumentType, grantor string, grantees []string, description string) *domain.Analysis {
	return &domain.Analysis{
		DocumentType:    docType,
		DocumentNumber:  "D-" + grantor,
		Grantors:        []string{grantor},
		Grantees:        grantees,
		OwnershipChange: true,
		LeaseStatus:     domain.LeaseStatusNone,
		Description:     description,
	}
}

// apply runs rows in order from an empty ledger, failing on confirmation requests.
func apply(t *testing.T, l *ledger.Ledger, acres float64, rows ...*domain.Analysis) domain.OngoingOwnership {
	t.Helper()
	state := domain.NewOngoingOwnership(acres)
	for i, a := range rows {
		res, err := l.Apply(state, ledger.ApplyInput{Analysis: a, RowNumber: i + 1, TotalAcres: acres})
		require.NoError(t, err)
		require.False(t, res.NeedsConfirmation, "row %d needs confirmation: %+v", i+1, res.Candidates)
		state = res.State
	}
	return state
}

func owner(t *testing.T, s domain.OngoingOwnership, name string) domain.Owner {
	t.Helper()
	for _, o := range s.Owners {
		if o.Name == name {
			return o
		}
	}
	require.Failf(t, "owner not found", "%q in %+v", name, s.Owners)
	return domain.Owner{}
}

func hasOwner(s domain.OngoingOwnership, name string) bool {
	for _, o := range s.Owners {
		if o.Name == name {
			return true
		}
	}
	return false
}

func assertTotalsConsistent(t *testing.T, s domain.OngoingOwnership) {
	t.Helper()
	var surface, mineral float64
	for _, o := range s.Owners {
		surface += o.SurfacePercentage
		mineral += o.MineralPercentage
		assert.InDelta(t, o.SurfacePercentage/100*s.TotalAcres, o.NetSurfaceAcres, delta)
		assert.InDelta(t, o.MineralPercentage/100*s.TotalAcres, o.NetMineralAcres, delta)
	}
	assert.InDelta(t, surface, s.TotalSurfacePercentage, delta)
	assert.InDelta(t, mineral, s.TotalMineralPercentage, delta)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		a    *domain.Analysis
		want ledger.RuleKind
	}{
		{"nil", nil, ledger.RuleNone},
		{"patent", patent("Acme Corp"), ledger.RulePatent},
		{"mineral deed", deed(domain.DocumentTypeMineralDeed, "A", []string{"B"}, ""), ledger.RuleMineralDeed},
		{"mineral deed spelled out", deed("Mineral Deed", "A", []string{"B"}, ""), ledger.RuleMineralDeed},
		{"surface only", deed(domain.DocumentTypeWarrantyDeed, "A", []string{"B"}, "surface only"), ledger.RuleSurfaceDeed},
		{"warranty deed", deed(domain.DocumentTypeWarrantyDeed, "A", []string{"B"}, ""), ledger.RuleGeneralDeed},
		{"unknown type", deed("", "A", []string{"B"}, ""), ledger.RuleGeneralDeed},
		{"no grantees", deed(domain.DocumentTypeWarrantyDeed, "A", []string{" "}, ""), ledger.RuleNone},
		{"no ownership change", &domain.Analysis{DocumentType: domain.DocumentTypeWarrantyDeed, Grantees: []string{"B"}}, ledger.RuleNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ledger.Classify(tc.a))
		})
	}
}

func TestApply_PatentBaseline(t *testing.T) {
	s := apply(t, newLedger(), 80, patent("Acme Corp"))

	require.Len(t, s.Owners, 1)
	o := s.Owners[0]
	assert.Equal(t, "Acme Corp", o.Name)
	assert.InDelta(t, 100, o.SurfacePercentage, delta)
	assert.InDelta(t, 100, o.MineralPercentage, delta)
	assert.InDelta(t, 80, o.NetSurfaceAcres, delta)
	assert.InDelta(t, 80, o.NetMineralAcres, delta)
	assert.Equal(t, "P-1", o.AcquisitionDocument)
	assert.Equal(t, domain.OwnerLeaseUnknown, o.CurrentLeaseStatus)
	assert.Equal(t, 1, s.LastUpdatedRow)
	assertTotalsConsistent(t, s)
}

func TestApply_PatentBackfillsAcres(t *testing.T) {
	s := apply(t, newLedger(), 0, patent("Acme Corp"))
	assert.InDelta(t, ledger.DefaultAcres, s.TotalAcres, delta)
	assert.InDelta(t, ledger.DefaultAcres, s.Owners[0].NetSurfaceAcres, delta)

	withAcreage := patent("Acme Corp")
	withAcreage.Acreage = 160
	s = apply(t, newLedger(), 0, withAcreage)
	assert.InDelta(t, 160, s.TotalAcres, delta)

	custom := ledger.New(ledger.Config{DefaultAcres: 40}, nil)
	s = apply(t, custom, 0, patent("Acme Corp"))
	assert.InDelta(t, 40, s.TotalAcres, delta)
}

func TestApply_PatentWithReservation(t *testing.T) {
	p := patent("Acme Corp")
	p.Grantors = nil
	p.Description = "Patent reserving 1/1 of all mineral rights to the United States"

	s := apply(t, newLedger(), 80, p)

	acme := owner(t, s, "Acme Corp")
	assert.InDelta(t, 100, acme.SurfacePercentage, delta)
	assert.InDelta(t, 0, acme.MineralPercentage, delta)
	usa := owner(t, s, ledger.DefaultPatentGrantor)
	assert.InDelta(t, 0, usa.SurfacePercentage, delta)
	assert.InDelta(t, 100, usa.MineralPercentage, delta)
	assertTotalsConsistent(t, s)
}

func TestApply_FullDeedConservation(t *testing.T) {
	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprintf("%d grantees", n), func(t *testing.T) {
			grantees := make([]string, n)
			for i := range grantees {
				grantees[i] = fmt.Sprintf("Heir Number%d", i+1)
			}

			s := apply(t, newLedger(), 80,
				patent("Acme Corp"),
				deed(domain.DocumentTypeWarrantyDeed, "Acme Corp", grantees, ""),
			)

			assert.False(t, hasOwner(s, "Acme Corp"))
			var surface, mineral float64
			for _, g := range grantees {
				o := owner(t, s, g)
				surface += o.SurfacePercentage
				mineral += o.MineralPercentage
			}
			assert.InDelta(t, 100, surface, 1e-6)
			assert.InDelta(t, 100, mineral, 1e-6)
			assertTotalsConsistent(t, s)
		})
	}
}

func TestApply_ReservationMath(t *testing.T) {
	s := apply(t, newLedger(), 80,
		patent("Acme Corp"),
		deed(domain.DocumentTypeWarrantyDeed, "Acme Corp", []string{"Jane Smith"}, "reserving 1/2 of the mineral interest"),
	)

	acme := owner(t, s, "Acme Corp")
	assert.InDelta(t, 0, acme.SurfacePercentage, delta)
	assert.InDelta(t, 50, acme.MineralPercentage, delta)
	jane := owner(t, s, "Jane Smith")
	assert.InDelta(t, 100, jane.SurfacePercentage, delta)
	assert.InDelta(t, 50, jane.MineralPercentage, delta)
	assert.InDelta(t, 40, jane.NetMineralAcres, delta)
	assertTotalsConsistent(t, s)
}

func TestApply_MineralDeedIsolation(t *testing.T) {
	l := newLedger()
	before := apply(t, l, 80,
		patent("Acme Corp"),
		deed(domain.DocumentTypeWarrantyDeed, "Acme Corp", []string{"Jane Smith", "Robert Brown"}, "reserving 1/2 mineral interest"),
	)

	res, err := l.Apply(before, ledger.ApplyInput{
		Analysis:  deed(domain.DocumentTypeMineralDeed, "Jane Smith", []string{"Oil Co", "Gas Co"}, ""),
		RowNumber: 3,
	})
	require.NoError(t, err)
	after := res.State

	for _, o := range before.Owners {
		if hasOwner(after, o.Name) {
			assert.InDelta(t, o.SurfacePercentage, owner(t, after, o.Name).SurfacePercentage, delta, o.Name)
		}
	}
	jane := owner(t, after, "Jane Smith")
	assert.InDelta(t, 50, jane.SurfacePercentage, delta)
	assert.InDelta(t, 0, jane.MineralPercentage, delta)
	assert.InDelta(t, 12.5, owner(t, after, "Oil Co").MineralPercentage, delta)
	assert.InDelta(t, 0, owner(t, after, "Oil Co").SurfacePercentage, delta)
	assert.InDelta(t, 12.5, owner(t, after, "Gas Co").MineralPercentage, delta)
	assertTotalsConsistent(t, after)
}

func TestApply_SurfaceDeed(t *testing.T) {
	s := apply(t, newLedger(), 80,
		patent("Acme Corp"),
		deed(domain.DocumentTypeWarrantyDeed, "Acme Corp", []string{"Ranch LLC"}, "conveying the surface estate only"),
	)

	acme := owner(t, s, "Acme Corp")
	assert.InDelta(t, 0, acme.SurfacePercentage, delta)
	assert.InDelta(t, 100, acme.MineralPercentage, delta)
	ranch := owner(t, s, "Ranch LLC")
	assert.InDelta(t, 100, ranch.SurfacePercentage, delta)
	assert.InDelta(t, 0, ranch.MineralPercentage, delta)
}

func TestApply_PendingSurfaceDeed(t *testing.T) {
	l := newLedger()
	s1 := apply(t, l, 80, deed(domain.DocumentTypeWarrantyDeed, "Acme Corp", []string{"Ranch LLC"}, "conveying the surface estate only"))
	require.Len(t, s1.PendingTransfers, 1)
	p := s1.PendingTransfers[0]
	assert.Equal(t, domain.TransferSurfaceOnly, p.TransferType)
	assert.InDelta(t, 100, p.SurfacePercentage, delta)
	assert.InDelta(t, 0, p.MineralPercentage, delta)
	assert.False(t, hasOwner(s1, "Ranch LLC"))

	res, err := l.Apply(s1, ledger.ApplyInput{Analysis: patent("Acme Corp"), RowNumber: 2, TotalAcres: 80})
	require.NoError(t, err)
	s2 := res.State

	assert.Empty(t, s2.PendingTransfers)
	acme := owner(t, s2, "Acme Corp")
	assert.InDelta(t, 0, acme.SurfacePercentage, delta)
	assert.InDelta(t, 100, acme.MineralPercentage, delta)
	ranch := owner(t, s2, "Ranch LLC")
	assert.InDelta(t, 100, ranch.SurfacePercentage, delta)
	assert.InDelta(t, 0, ranch.MineralPercentage, delta)
	assertTotalsConsistent(t, s2)
}

func TestApply_PendingKeepsPercentageChange(t *testing.T) {
	d := deed(domain.DocumentTypeWarrantyDeed, "Acme Corp", []string{"Jane Smith", "Mark Brown"}, "")
	pc := 30.0
	d.PercentageChange = &pc

	l := newLedger()
	s1 := apply(t, l, 80, d)
	require.Len(t, s1.PendingTransfers, 2)
	for _, p := range s1.PendingTransfers {
		require.NotNil(t, p.PercentageChange)
		assert.InDelta(t, 30, *p.PercentageChange, delta)
	}

	res, err := l.Apply(s1, ledger.ApplyInput{Analysis: patent("Acme Corp"), RowNumber: 2, TotalAcres: 80})
	require.NoError(t, err)
	s2 := res.State

	assert.Empty(t, s2.PendingTransfers)
	for _, name := range []string{"Jane Smith", "Mark Brown"} {
		o := owner(t, s2, name)
		assert.InDelta(t, 30, o.SurfacePercentage, delta)
		assert.InDelta(t, 30, o.MineralPercentage, delta)
	}
	acme := owner(t, s2, "Acme Corp")
	assert.InDelta(t, 40, acme.SurfacePercentage, delta)
	assert.InDelta(t, 40, acme.MineralPercentage, delta)
	assertTotalsConsistent(t, s2)
}

func TestApply_PendingTransferLifecycle(t *testing.T) {
	l := newLedger()

	s1 := apply(t, l, 80, deed(domain.DocumentTypeWarrantyDeed, "Acme Corp", []string{"Jane Smith"}, ""))
	require.Len(t, s1.PendingTransfers, 1)
	assert.False(t, hasOwner(s1, "Jane Smith"))
	p := s1.PendingTransfers[0]
	assert.Equal(t, domain.TransferFull, p.TransferType)
	assert.InDelta(t, 100, p.SurfacePercentage, delta)
	assert.InDelta(t, 100, p.MineralPercentage, delta)
	assert.Equal(t, 1, p.RowIndex)

	res, err := l.Apply(s1, ledger.ApplyInput{Analysis: patent("Acme Corp"), RowNumber: 2, TotalAcres: 80})
	require.NoError(t, err)
	s2 := res.State

	assert.Empty(t, s2.PendingTransfers)
	assert.False(t, hasOwner(s2, "Acme Corp"))
	jane := owner(t, s2, "Jane Smith")
	assert.InDelta(t, 100, jane.SurfacePercentage, delta)
	assert.InDelta(t, 100, jane.MineralPercentage, delta)
	assert.Equal(t, "D-Acme Corp", jane.AcquisitionDocument)
	assertTotalsConsistent(t, s2)
}

func TestApply_PendingSplitAndReservation(t *testing.T) {
	s := apply(t, newLedger(), 80,
		deed(domain.DocumentTypeWarrantyDeed, "Acme Corp", []string{"Jane Smith", "Mark Brown"}, "reserving 1/2 of the minerals"),
		patent("Acme Corp"),
	)

	assert.Empty(t, s.PendingTransfers)
	acme := owner(t, s, "Acme Corp")
	assert.InDelta(t, 0, acme.SurfacePercentage, delta)
	assert.InDelta(t, 50, acme.MineralPercentage, delta)
	for _, name := range []string{"Jane Smith", "Mark Brown"} {
		o := owner(t, s, name)
		assert.InDelta(t, 50, o.SurfacePercentage, delta)
		assert.InDelta(t, 25, o.MineralPercentage, delta)
	}
	assertTotalsConsistent(t, s)
}

func TestApply_PendingChainsResolve(t *testing.T) {
	s := apply(t, newLedger(), 80,
		deed(domain.DocumentTypeWarrantyDeed, "Jane Smith", []string{"Carl Diaz"}, ""),
		deed(domain.DocumentTypeMineralDeed, "Acme Corp", []string{"Jane Smith"}, ""),
		patent("Acme Corp"),
	)

	assert.Empty(t, s.PendingTransfers)
	acme := owner(t, s, "Acme Corp")
	assert.InDelta(t, 100, acme.SurfacePercentage, delta)
	assert.InDelta(t, 0, acme.MineralPercentage, delta)
	carl := owner(t, s, "Carl Diaz")
	assert.InDelta(t, 100, carl.MineralPercentage, delta)
	assert.False(t, hasOwner(s, "Jane Smith"))
}

func TestApply_MineralDeedAbsentGrantorQueuesPerGrantee(t *testing.T) {
	s := apply(t, newLedger(), 80, deed(domain.DocumentTypeMineralDeed, "Ghost LLC", []string{"A Corp", "B Corp", "C Corp", "D Corp"}, ""))

	require.Len(t, s.PendingTransfers, 4)
	for _, p := range s.PendingTransfers {
		assert.Equal(t, domain.TransferMineralOnly, p.TransferType)
		assert.InDelta(t, 25, p.MineralPercentage, delta)
		assert.InDelta(t, 0, p.SurfacePercentage, delta)
	}
	assert.Empty(t, s.Owners)
}

func TestApply_PercentageChangeOverride(t *testing.T) {
	d := deed(domain.DocumentTypeWarrantyDeed, "Acme Corp", []string{"Jane Smith", "Mark Brown", "Lee Park"}, "")
	pc := 40.0
	d.PercentageChange = &pc

	s := apply(t, newLedger(), 80, patent("Acme Corp"), d)

	assert.InDelta(t, 40, owner(t, s, "Jane Smith").SurfacePercentage, delta)
	assert.InDelta(t, 40, owner(t, s, "Mark Brown").SurfacePercentage, delta)
	assert.InDelta(t, 20, owner(t, s, "Lee Park").SurfacePercentage, delta)
	assert.False(t, hasOwner(s, "Acme Corp"))
	assertTotalsConsistent(t, s)
}

func TestApply_MultipleGrantorsConveyOwnInterest(t *testing.T) {
	d := deed(domain.DocumentTypeWarrantyDeed, "Jane Smith", []string{"Carl Diaz"}, "")
	d.Grantors = []string{"Jane Smith", "Mark Brown"}

	s := apply(t, newLedger(), 80,
		patent("Jane Smith", "Mark Brown"),
		d,
	)

	require.Len(t, s.Owners, 1)
	assert.InDelta(t, 100, owner(t, s, "Carl Diaz").SurfacePercentage, delta)
	assert.InDelta(t, 100, owner(t, s, "Carl Diaz").MineralPercentage, delta)
}

func TestApply_ExactGranteeAddsToExistingOwner(t *testing.T) {
	s := apply(t, newLedger(), 80,
		patent("Jane Smith", "Mark Brown"),
		deed(domain.DocumentTypeWarrantyDeed, "Mark Brown", []string{"JANE SMITH"}, ""),
	)

	require.Len(t, s.Owners, 1)
	jane := owner(t, s, "Jane Smith")
	assert.InDelta(t, 100, jane.SurfacePercentage, delta)
}

func TestApply_NameMatchRequiresConfirmation(t *testing.T) {
	l := newLedger()
	prior := apply(t, l, 80, patent("William Johnson"), deed(domain.DocumentTypeWarrantyDeed, "William Johnson", []string{"Mary Clark", "Ed Stone"}, "reserving 1/2 mineral interest"))
	row := deed(domain.DocumentTypeMineralDeed, "Mary Clark", []string{"Bill Johnson"}, "")

	res, err := l.Apply(prior, ledger.ApplyInput{Analysis: row, RowNumber: 3})
	require.NoError(t, err)

	assert.True(t, res.NeedsConfirmation)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "Bill Johnson", res.Candidates[0].GranteeName)
	require.Len(t, res.Candidates[0].Matches, 1)
	m := res.Candidates[0].Matches[0]
	assert.Equal(t, "William Johnson", m.OwnerName)
	assert.Equal(t, domain.MatchConfidenceMedium, m.Confidence)
	assert.Equal(t, "nickname variation", m.Reason)
	assert.Equal(t, prior, res.State)
}

func TestApply_ConfirmedMatchMerges(t *testing.T) {
	l := newLedger()
	prior := apply(t, l, 80, patent("William Johnson"), deed(domain.DocumentTypeWarrantyDeed, "William Johnson", []string{"Mary Clark", "Ed Stone"}, "reserving 1/2 mineral interest"))
	row := deed(domain.DocumentTypeMineralDeed, "Mary Clark", []string{"Bill Johnson"}, "")

	res, err := l.Apply(prior, ledger.ApplyInput{
		Analysis:     row,
		RowNumber:    3,
		Confirmation: &domain.MatchConfirmation{Matches: map[string]string{"Bill Johnson": "William Johnson"}},
	})
	require.NoError(t, err)
	require.False(t, res.NeedsConfirmation)

	merged := owner(t, res.State, "William Johnson AKA Bill Johnson")
	assert.Equal(t, owner(t, prior, "William Johnson").ID, merged.ID)
	assert.ElementsMatch(t, []string{"William Johnson", "Bill Johnson"}, merged.Aliases)
	assert.InDelta(t, 0, merged.SurfacePercentage, delta)
	assert.InDelta(t, 75, merged.MineralPercentage, delta)
	assert.False(t, hasOwner(res.State, "Bill Johnson"))
	assertTotalsConsistent(t, res.State)
}

func TestApply_TwoGranteesConfirmedToSameOwner(t *testing.T) {
	l := newLedger()
	prior := apply(t, l, 80, patent("William Johnson"), deed(domain.DocumentTypeWarrantyDeed, "William Johnson", []string{"Mary Clark", "Ed Stone"}, "reserving 1/2 mineral interest"))
	row := deed(domain.DocumentTypeMineralDeed, "Mary Clark", []string{"Bill Johnson", "Will Johnson"}, "")

	res, err := l.Apply(prior, ledger.ApplyInput{
		Analysis:  row,
		RowNumber: 3,
		Confirmation: &domain.MatchConfirmation{Matches: map[string]string{
			"Bill Johnson": "William Johnson",
			"Will Johnson": "William Johnson",
		}},
	})
	require.NoError(t, err)
	require.False(t, res.NeedsConfirmation)

	merged := owner(t, res.State, "William Johnson AKA Bill Johnson AKA Will Johnson")
	assert.Equal(t, owner(t, prior, "William Johnson").ID, merged.ID)
	assert.ElementsMatch(t, []string{"William Johnson", "Bill Johnson", "Will Johnson"}, merged.Aliases)
	assert.InDelta(t, 75, merged.MineralPercentage, delta)
	assert.False(t, hasOwner(res.State, "Will Johnson"))
	assert.False(t, hasOwner(res.State, "Bill Johnson"))
	for _, w := range res.Warnings {
		assert.NotContains(t, w, "not a candidate")
	}
	assertTotalsConsistent(t, res.State)
}

func TestApply_ConfirmationWithoutMatchesAddsNewOwner(t *testing.T) {
	l := newLedger()
	prior := apply(t, l, 80, patent("William Johnson"))
	row := deed(domain.DocumentTypeMineralDeed, "William Johnson", []string{"Bill Johnson"}, "")

	res, err := l.Apply(prior, ledger.ApplyInput{Analysis: row, RowNumber: 2, Confirmation: &domain.MatchConfirmation{}})
	require.NoError(t, err)

	assert.False(t, res.NeedsConfirmation)
	assert.InDelta(t, 100, owner(t, res.State, "Bill Johnson").MineralPercentage, delta)
	assert.InDelta(t, 100, owner(t, res.State, "William Johnson").SurfacePercentage, delta)
}

func TestApply_IdempotencyKey(t *testing.T) {
	l := newLedger()
	prior := apply(t, l, 80, patent("Acme Corp"))
	in := ledger.ApplyInput{
		Analysis:  deed(domain.DocumentTypeWarrantyDeed, "Acme Corp", []string{"Jane Smith"}, ""),
		RowNumber: 2,
		Key:       "row-id-2",
	}

	first, err := l.Apply(prior, in)
	require.NoError(t, err)
	second, err := l.Apply(first.State, in)
	require.NoError(t, err)

	assert.False(t, first.Duplicate)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.State, second.State)
	assert.Contains(t, second.State.AppliedRows, "row-id-2")

	in.TotalAcres = 640
	third, err := l.Apply(first.State, in)
	require.NoError(t, err)
	assert.True(t, third.Duplicate)
	assert.Equal(t, first.State, third.State)
	assert.InDelta(t, 80, third.State.TotalAcres, delta)
}

func TestApply_IsPureAndDeterministic(t *testing.T) {
	l := newLedger()
	prior := apply(t, l, 80, patent("Acme Corp"))
	snapshot := prior.Clone()
	in := ledger.ApplyInput{
		Analysis:  deed(domain.DocumentTypeWarrantyDeed, "Acme Corp", []string{"Jane Smith", "Mark Brown"}, ""),
		RowNumber: 2,
	}

	a, err := l.Apply(prior, in)
	require.NoError(t, err)
	b, err := l.Apply(prior, in)
	require.NoError(t, err)

	assert.Equal(t, snapshot, prior)
	assert.Equal(t, a.State, b.State)
}

func TestApply_LeaseStatus(t *testing.T) {
	l := newLedger()
	prior := apply(t, l, 80, patent("Acme Corp"))
	lease := &domain.Analysis{
		DocumentType:    "OGL",
		Grantors:        []string{"Acme Corp"},
		Grantees:        []string{"Driller Inc"},
		OwnershipChange: false,
		LeaseStatus:     domain.LeaseStatusActive,
		LeaseDetails:    &domain.LeaseDetails{Lessee: "Driller Inc", Royalty: "1/8"},
	}

	res, err := l.Apply(prior, ledger.ApplyInput{Analysis: lease, RowNumber: 2})
	require.NoError(t, err)

	acme := owner(t, res.State, "Acme Corp")
	assert.Equal(t, domain.OwnerLeaseLeased, acme.CurrentLeaseStatus)
	require.NotNil(t, acme.LeaseDetails)
	assert.Equal(t, "1/8", acme.LeaseDetails.Royalty)
	assert.False(t, hasOwner(res.State, "Driller Inc"))
	assert.Equal(t, 2, res.State.LastUpdatedRow)

	lease.LeaseStatus = domain.LeaseStatusExpired
	res, err = l.Apply(res.State, ledger.ApplyInput{Analysis: lease, RowNumber: 3})
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerLeaseExpiredHBP, owner(t, res.State, "Acme Corp").CurrentLeaseStatus)
}

func TestApply_UnknownTypeWarns(t *testing.T) {
	l := newLedger()
	prior := apply(t, l, 80, patent("Acme Corp"))

	res, err := l.Apply(prior, ledger.ApplyInput{Analysis: deed("", "Acme Corp", []string{"Jane Smith"}, ""), RowNumber: 2})
	require.NoError(t, err)

	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "not recognised")
	assert.InDelta(t, 100, owner(t, res.State, "Jane Smith").SurfacePercentage, delta)
}

func TestApply_Errors(t *testing.T) {
	l := newLedger()

	_, err := l.Apply(domain.NewOngoingOwnership(80), ledger.ApplyInput{RowNumber: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidAnalysis)

	_, err = l.Apply(domain.NewOngoingOwnership(80), ledger.ApplyInput{Analysis: patent("A B"), TotalAcres: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidAnalysis)
}
