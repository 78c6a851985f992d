package ledger

import (
	"runsheet/internal/domain"
	"runsheet/internal/names"
)

type pendingGroup struct {
	grantor string
	row     int
	doc     string
}

// resolvePending applies queued transfers whose grantor is now an owner. Transfers from the
// same origin document share one base so that equal splits still sum to the grantor's share.
// It repeats until a pass resolves nothing, since new grantees can unlock further transfers.
func (l *Ledger) resolvePending(t *transition) {
	for {
		var order []pendingGroup
		groups := map[pendingGroup][]int{}
		for i, p := range t.state.PendingTransfers {
			idx := t.find(p.GrantorName)
			if idx < 0 || !hasInterest(&t.state.Owners[idx], p.TransferType) {
				continue
			}
			k := pendingGroup{grantor: names.Normalize(p.GrantorName), row: p.RowIndex, doc: p.DocumentReference}
			if _, ok := groups[k]; !ok {
				order = append(order, k)
			}
			groups[k] = append(groups[k], i)
		}
		if len(order) == 0 {
			return
		}

		resolved := make(map[int]bool)
		for _, k := range order {
			members := groups[k]
			idx := t.find(t.state.PendingTransfers[members[0]].GrantorName)
			if idx < 0 {
				continue
			}
			baseSurface := t.state.Owners[idx].SurfacePercentage
			baseMineral := t.state.Owners[idx].MineralPercentage

			for _, mi := range members {
				p := t.state.PendingTransfers[mi]
				idx = t.find(p.GrantorName)
				o := &t.state.Owners[idx]

				var surface, mineral float64
				switch p.TransferType {
				case domain.TransferSurfaceOnly:
					surface = p.SurfacePercentage / 100 * baseSurface
				case domain.TransferMineralOnly:
					mineral = p.MineralPercentage / 100 * baseMineral
				default:
					surface = p.SurfacePercentage / 100 * baseSurface
					mineral = p.MineralPercentage / 100 * baseMineral * (1 - p.ReservedMineralPercentage/100)
				}
				if p.PercentageChange != nil {
					surface, mineral = overrideShares(p)
				}
				surface = min(surface, o.SurfacePercentage)
				mineral = min(mineral, o.MineralPercentage-keptMineral(p, baseMineral))
				mineral = max(mineral, 0)
				o.SurfacePercentage = clampPct(o.SurfacePercentage - surface)
				o.MineralPercentage = clampPct(o.MineralPercentage - mineral)

				t.credit(recipient{name: p.GranteeName}, surface, mineral, p.DocumentReference)
				resolved[mi] = true
			}
		}

		remaining := t.state.PendingTransfers[:0]
		for i, p := range t.state.PendingTransfers {
			if !resolved[i] {
				remaining = append(remaining, p)
			}
		}
		t.state.PendingTransfers = remaining
	}
}

// overrideShares gives the points a pending transfer moves when the deed stated them
// explicitly. The caller caps them at what the grantor still holds.
func overrideShares(p domain.PendingTransfer) (surface, mineral float64) {
	pc := *p.PercentageChange
	switch p.TransferType {
	case domain.TransferSurfaceOnly:
		return pc, 0
	case domain.TransferMineralOnly:
		return 0, pc
	default:
		return pc, pc
	}
}

// keptMineral is the part of the grantor's mineral share a reservation holds back.
func keptMineral(p domain.PendingTransfer, baseMineral float64) float64 {
	if p.TransferType != domain.TransferFull {
		return 0
	}
	return baseMineral * p.ReservedMineralPercentage / 100
}

func hasInterest(o *domain.Owner, kind domain.TransferType) bool {
	switch kind {
	case domain.TransferSurfaceOnly:
		return o.SurfacePercentage > 0
	case domain.TransferMineralOnly:
		return o.MineralPercentage > 0
	default:
		return o.SurfacePercentage > 0 || o.MineralPercentage > 0
	}
}
