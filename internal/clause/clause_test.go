package clause_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"runsheet/internal/clause"
)

func TestReservedMineralPercentage(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        float64
	}{
		{"reserving half", "Grantor conveys the NW/4, reserving 1/2 of the mineral interest", 50},
		{"reserving with party", "reserving unto Grantor an undivided 1/4 interest in the oil, gas and minerals", 25},
		{"except", "all of Section 12 except 1/8 of the minerals previously conveyed", 12.5},
		{"excepting", "EXCEPTING 3/4 MINERAL RIGHTS", 75},
		{"saving", "saving and excepting 1/2 mineral interest", 50},
		{"mineral reserved", "the mineral estate, 1/3 of which is reserved", 100.0 / 3},
		{"undivided reserved", "an undivided 1/16 royalty and mineral interest is reserved", 6.25},
		{"no clause", "Warranty deed of the surface and minerals", 0},
		{"empty", "", 0},
		{"zero denominator", "reserving 1/0 mineral interest", 0},
		{"clamped", "reserving 3/2 of the minerals", 100},
		{"sentence boundary", "Reserving an easement. Grantee takes 1/2 mineral interest", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, clause.ReservedMineralPercentage(tc.description), 1e-9)
		})
	}
}

func TestMatch_PriorityAndAmbiguity(t *testing.T) {
	res := clause.Match("reserving 1/2 of the mineral interest; except 1/4 mineral rights previously sold")

	assert.Equal(t, "reserving", res.Pattern)
	assert.InDelta(t, 50, res.Percentage, 1e-9)
	assert.True(t, res.Ambiguous)
}

func TestMatch_NoMatch(t *testing.T) {
	res := clause.Match("Quitclaim of all right, title and interest")

	assert.Empty(t, res.Pattern)
	assert.Zero(t, res.Percentage)
	assert.False(t, res.Ambiguous)
}

func TestIsSurfaceOnly(t *testing.T) {
	assert.True(t, clause.IsSurfaceOnly("Conveys surface only, minerals excluded"))
	assert.True(t, clause.IsSurfaceOnly("the Surface Estate only of the NE/4"))
	assert.True(t, clause.IsSurfaceOnly("surface rights only"))
	assert.True(t, clause.IsSurfaceOnly("conveying only the surface of said land"))
	assert.False(t, clause.IsSurfaceOnly("all surface and mineral rights"))
}
