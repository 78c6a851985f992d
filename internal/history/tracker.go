// Package history keeps immutable per-row snapshots of the ownership ledger.
package history

import (
	"encoding/json"
	"fmt"
	"sort"

	"runsheet/internal/domain"
)

// Tracker stores one snapshot per approved row. Snapshots are deep copies on the way in
// and on the way out, so callers can never alias a stored state.
// A Tracker is not safe for concurrent use.
type Tracker struct {
	snapshots map[int]domain.OngoingOwnership
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{snapshots: make(map[int]domain.OngoingOwnership)}
}

// FromSnapshots rebuilds a Tracker from persisted snapshots.
func FromSnapshots(snapshots map[int]domain.OngoingOwnership) *Tracker {
	t := New()
	for row, s := range snapshots {
		t.snapshots[row] = s.Clone()
	}
	return t
}

// Snapshots returns a copy of every stored snapshot keyed by row number.
func (t *Tracker) Snapshots() map[int]domain.OngoingOwnership {
	out := make(map[int]domain.OngoingOwnership, len(t.snapshots))
	for row, s := range t.snapshots {
		out[row] = s.Clone()
	}
	return out
}

// Record stores the ledger state after row, replacing any earlier snapshot for it.
func (t *Tracker) Record(row int, state domain.OngoingOwnership) {
	t.snapshots[row] = state.Clone()
}

// At returns the snapshot taken after row.
func (t *Tracker) At(row int) (domain.OngoingOwnership, bool) {
	s, ok := t.snapshots[row]
	if !ok {
		return domain.OngoingOwnership{}, false
	}
	return s.Clone(), true
}

// Before returns the nearest snapshot strictly before row, or an empty ledger for a
// tract of totalAcres when there is none.
func (t *Tracker) Before(row int, totalAcres float64) domain.OngoingOwnership {
	best := -1
	for r := range t.snapshots {
		if r < row && r > best {
			best = r
		}
	}
	if best < 0 {
		return domain.NewOngoingOwnership(totalAcres)
	}
	return t.snapshots[best].Clone()
}

// Truncate drops every snapshot at or after row.
func (t *Tracker) Truncate(row int) {
	for r := range t.snapshots {
		if r >= row {
			delete(t.snapshots, r)
		}
	}
}

// Reset drops every snapshot.
func (t *Tracker) Reset() {
	clear(t.snapshots)
}

// Rows returns the snapshotted row numbers in ascending order.
func (t *Tracker) Rows() []int {
	rows := make([]int, 0, len(t.snapshots))
	for r := range t.snapshots {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

// Len returns the number of snapshots.
func (t *Tracker) Len() int {
	return len(t.snapshots)
}

// Clone returns an independent copy of the Tracker.
func (t *Tracker) Clone() *Tracker {
	return FromSnapshots(t.snapshots)
}

func (t *Tracker) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.snapshots)
}

func (t *Tracker) UnmarshalJSON(data []byte) error {
	snapshots := make(map[int]domain.OngoingOwnership)
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return fmt.Errorf("history.Tracker.UnmarshalJSON: %w", err)
	}
	t.snapshots = snapshots
	return nil
}
