package names_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runsheet/internal/domain"
	"runsheet/internal/names"
)

func owner(name string, aliases ...string) domain.Owner {
	return domain.Owner{ID: uuid.New(), Name: name, Aliases: aliases, SurfacePercentage: 100, MineralPercentage: 100}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "jane smith", names.Normalize("  JANE   Smith. "))
	assert.Equal(t, "o brien james", names.Normalize("O'Brien, James"))
	assert.Equal(t, "smith & sons", names.Normalize("Smith & Sons"))
	assert.Empty(t, names.Normalize(" .,; "))
}

func TestVariations(t *testing.T) {
	r := names.NewResolver()

	got := r.Variations("William Henry Johnson")

	assert.Contains(t, got, "william henry johnson")
	assert.Contains(t, got, "william johnson")
	assert.Contains(t, got, "bill henry johnson")
	assert.Contains(t, got, "bill johnson")
	assert.Equal(t, "william henry johnson", got[0])
}

func TestVariations_ReverseNickname(t *testing.T) {
	r := names.NewResolver()

	assert.Contains(t, r.Variations("Bill Johnson"), "william johnson")
}

func TestFindPotentialMatches_Classification(t *testing.T) {
	r := names.NewResolver()

	tests := []struct {
		name       string
		grantee    string
		owner      string
		confidence domain.MatchConfidence
		reason     string
	}{
		{"exact", "JANE SMITH", "Jane Smith", domain.MatchConfidenceHigh, "exact match"},
		{"nickname", "Bill Johnson", "William Johnson", domain.MatchConfidenceMedium, "nickname variation"},
		{"missing middle", "John A. Smith", "John Smith", domain.MatchConfidenceMedium, "missing middle name/initial"},
		{"nickname and middle", "Bob Lee Carter", "Robert Carter", domain.MatchConfidenceMedium, "nickname variation with missing middle name"},
		{"name change", "Mary Smith", "Mary Jones", domain.MatchConfidenceMedium, "possible name change"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := owner(tc.owner)
			matches := r.FindPotentialMatches(tc.grantee, []domain.Owner{o})

			require.Len(t, matches, 1)
			assert.Equal(t, o.ID, matches[0].OwnerID)
			assert.Equal(t, tc.owner, matches[0].OwnerName)
			assert.Equal(t, tc.confidence, matches[0].Confidence)
			assert.Equal(t, tc.reason, matches[0].Reason)
		})
	}
}

func TestFindPotentialMatches_NoSubstringIdentity(t *testing.T) {
	r := names.NewResolver()

	assert.Empty(t, r.FindPotentialMatches("Jon Smith", []domain.Owner{owner("Jonathan Smithers")}))
	assert.Empty(t, r.FindPotentialMatches("Acme Corp", []domain.Owner{owner("Apex Acme Corp")}))
}

func TestFindPotentialMatches_HighFirstAndOnePerOwner(t *testing.T) {
	r := names.NewResolver()
	owners := []domain.Owner{
		owner("Mary Jones"),
		owner("Mary Smith"),
		owner("Mary Smith", "Mary Ann Smith"),
	}

	matches := r.FindPotentialMatches("Mary Smith", owners)

	require.Len(t, matches, 3)
	assert.Equal(t, domain.MatchConfidenceHigh, matches[0].Confidence)
	assert.Equal(t, domain.MatchConfidenceHigh, matches[1].Confidence)
	assert.Equal(t, domain.MatchConfidenceMedium, matches[2].Confidence)
	assert.Equal(t, "Mary Jones", matches[2].OwnerName)
}

func TestFindPotentialMatches_Alias(t *testing.T) {
	r := names.NewResolver()
	o := owner("William Johnson AKA Bill Johnson", "William Johnson", "Bill Johnson")

	matches := r.FindPotentialMatches("bill johnson", []domain.Owner{o})

	require.Len(t, matches, 1)
	assert.Equal(t, domain.MatchConfidenceHigh, matches[0].Confidence)
}

func TestFindPotentialMatches_EmptyName(t *testing.T) {
	r := names.NewResolver()

	assert.Nil(t, r.FindPotentialMatches("  ", []domain.Owner{owner("Jane Smith")}))
}

func TestOwnerHasName(t *testing.T) {
	o := owner("William Johnson AKA Bill Johnson", "William Johnson", "Bill Johnson")

	assert.True(t, names.OwnerHasName(&o, "BILL JOHNSON"))
	assert.True(t, names.OwnerHasName(&o, "william johnson aka bill johnson"))
	assert.False(t, names.OwnerHasName(&o, "Bill"))
}

func TestMergedName(t *testing.T) {
	assert.Equal(t, "William Johnson AKA Bill Johnson", names.MergedName("William Johnson", "Bill Johnson"))
	assert.Equal(t, "Jane Smith", names.MergedName("Jane Smith", "JANE SMITH"))
}

func TestLoadNicknames_ExtendsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nicknames.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ezekiel: [zeke]\n"), 0o600))

	extra, err := names.LoadNicknames(path)
	require.NoError(t, err)
	r := names.NewResolver(extra)

	matches := r.FindPotentialMatches("Zeke Pratt", []domain.Owner{owner("Ezekiel Pratt")})

	require.Len(t, matches, 1)
	assert.Equal(t, "nickname variation", matches[0].Reason)
}

func TestLoadNicknames_MissingFile(t *testing.T) {
	_, err := names.LoadNicknames(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "names.LoadNicknames")
}
