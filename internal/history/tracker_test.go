package history_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runsheet/internal/domain"
	"runsheet/internal/history"
)

func ledgerWith(row int, name string, surface, mineral float64) domain.OngoingOwnership {
	s := domain.NewOngoingOwnership(80)
	s.Owners = append(s.Owners, domain.Owner{
		ID:                uuid.New(),
		Name:              name,
		Aliases:           []string{name},
		SurfacePercentage: surface,
		MineralPercentage: mineral,
	})
	s.TotalSurfacePercentage = surface
	s.TotalMineralPercentage = mineral
	s.LastUpdatedRow = row
	return s
}

func TestTracker_RecordStoresCopy(t *testing.T) {
	tr := history.New()
	state := ledgerWith(1, "Acme Corp", 100, 100)

	tr.Record(1, state)
	state.Owners[0].SurfacePercentage = 0
	state.Owners[0].Aliases[0] = "changed"

	got, ok := tr.At(1)
	require.True(t, ok)
	assert.InDelta(t, 100, got.Owners[0].SurfacePercentage, 1e-9)
	assert.Equal(t, "Acme Corp", got.Owners[0].Aliases[0])
}

func TestTracker_AtReturnsCopy(t *testing.T) {
	tr := history.New()
	tr.Record(1, ledgerWith(1, "Acme Corp", 100, 100))

	first, _ := tr.At(1)
	first.Owners[0].MineralPercentage = 5

	second, _ := tr.At(1)
	assert.InDelta(t, 100, second.Owners[0].MineralPercentage, 1e-9)
}

func TestTracker_NavigateBackAndForthIsIdempotent(t *testing.T) {
	tr := history.New()
	tr.Record(1, ledgerWith(1, "Acme Corp", 100, 100))
	tr.Record(2, ledgerWith(2, "Jane Smith", 100, 50))

	atK, _ := tr.At(2)
	_, _ = tr.At(1)
	again, ok := tr.At(2)

	require.True(t, ok)
	assert.Equal(t, atK, again)
}

func TestTracker_Before(t *testing.T) {
	tr := history.New()
	tr.Record(1, ledgerWith(1, "Acme Corp", 100, 100))
	tr.Record(3, ledgerWith(3, "Jane Smith", 100, 100))

	assert.Equal(t, 1, tr.Before(3, 80).LastUpdatedRow)
	assert.Equal(t, 1, tr.Before(2, 80).LastUpdatedRow)
	assert.Equal(t, 3, tr.Before(10, 80).LastUpdatedRow)

	empty := tr.Before(1, 160)
	assert.Empty(t, empty.Owners)
	assert.InDelta(t, 160, empty.TotalAcres, 1e-9)
}

func TestTracker_Truncate(t *testing.T) {
	tr := history.New()
	for row := 1; row <= 4; row++ {
		tr.Record(row, ledgerWith(row, "Acme Corp", 100, 100))
	}

	tr.Truncate(3)

	assert.Equal(t, []int{1, 2}, tr.Rows())
	_, ok := tr.At(3)
	assert.False(t, ok)
}

func TestTracker_CloneIsIndependent(t *testing.T) {
	tr := history.New()
	tr.Record(1, ledgerWith(1, "Acme Corp", 100, 100))

	c := tr.Clone()
	c.Record(2, ledgerWith(2, "Jane Smith", 100, 100))
	tr.Reset()

	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, []int{1, 2}, c.Rows())
}

func TestTracker_JSONRoundTrip(t *testing.T) {
	tr := history.New()
	tr.Record(1, ledgerWith(1, "Acme Corp", 100, 100))
	tr.Record(2, ledgerWith(2, "Jane Smith", 50, 25))

	raw, err := json.Marshal(tr)
	require.NoError(t, err)

	restored := history.New()
	require.NoError(t, json.Unmarshal(raw, restored))

	assert.Equal(t, tr.Snapshots(), restored.Snapshots())
}
