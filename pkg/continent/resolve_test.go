package continent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokens() []string {
	return []string{
		"Countries of the World",
		"AFRICA",
		"Algeria",
		"Chad",
		"ASIA",
		"Japan",
		"EUROPE",
		"France",
		"N. AMERICA",
		"Canada",
		"OCEANIA",
		"Fiji",
		"S. AMERICA",
		"Chile",
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		country string
		want    string
	}{
		{"Algeria", "Africa"},
		{"Chad", "Africa"},
		{"Japan", "Asia"},
		{"France", "Europe"},
		{"Canada", "North America"},
		{"Fiji", "Oceania"},
		{"Chile", "South America"},
		{"Atlantis", "Other"},
		{"Greenland", "Other"},
	}

	for _, tc := range cases {
		t.Run(tc.country, func(t *testing.T) {
			got, err := Resolve(tc.country, testTokens())
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveUsesNearestPrecedingMarker(t *testing.T) {
	tokens := []string{"AFRICA", "Chad", "EUROPE", "France"}

	got, err := Resolve("Chad", tokens)
	require.NoError(t, err)
	assert.Equal(t, "Africa", got)

	got, err = Resolve("France", tokens)
	require.NoError(t, err)
	assert.Equal(t, "Europe", got)
}

func TestResolveIsDeterministic(t *testing.T) {
	tokens := testTokens()
	first, err := Resolve("Japan", tokens)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		got, err := Resolve("Japan", tokens)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestResolveNeverReturnsOtherForListedCountries(t *testing.T) {
	tokens := testTokens()
	for _, tok := range tokens {
		if _, isMarker := markerLabel(tok); isMarker || tok == "Countries of the World" {
			continue
		}
		got, err := Resolve(tok, tokens)
		require.NoError(t, err)
		assert.NotEqual(t, Other, got, "listed country %q must resolve to a continent", tok)
	}
}

func TestResolveDuplicateUsesFirstOccurrence(t *testing.T) {
	tokens := []string{"AFRICA", "Chad", "ASIA", "Chad"}
	got, err := Resolve("Chad", tokens)
	require.NoError(t, err)
	assert.Equal(t, "Africa", got)
}

func TestResolveMissingMarkerIsFatal(t *testing.T) {
	// Corrupt list: a country before any continent heading.
	tokens := []string{"Chad", "AFRICA", "Algeria"}

	_, err := Resolve("Chad", tokens)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMarker)
}

func TestCheckIntegrity(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		assert.NoError(t, CheckIntegrity([]string{"AFRICA", "Chad", "EUROPE", "France"}))
	})

	t.Run("country before first marker", func(t *testing.T) {
		err := CheckIntegrity([]string{"Chad", "AFRICA"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoMarker)
	})

	t.Run("duplicate country", func(t *testing.T) {
		err := CheckIntegrity([]string{"AFRICA", "Chad", "ASIA", "Chad"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{
		"Africa", "Asia", "Europe", "North America", "Oceania", "South America", Other,
	}, Labels())
}
