package dataset

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvFixture = `World Development Indicators,,,,,,,
Country Name,GNI per capita,Imports (% of GDP),Exports (% of GDP),Fertility rate 1960,Fertility rate 2013,Infant mortality rate,Rural population (% of total)
Chad,"1,020",43.1,36.2,6.25,6.31,85.0,77.7
Norway,102450,28.1,38.9,2.85,1.78,2.0,19.8
Aruba,,43.0,41.0,4.82,1.65,,57.2
`

func csvFile(t *testing.T, content string) *File {
	t.Helper()
	return &File{
		URL:           "test.csv",
		Title:         "test",
		ContentBase64: base64.StdEncoding.EncodeToString([]byte(content)),
	}
}

func TestTableBuilderParsesIndicatorCSV(t *testing.T) {
	builder := NewTableBuilder()
	require.NoError(t, ExtractDataFromCSV(csvFile(t, csvFixture), builder.Add))

	rows, err := builder.Table()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	chad := rows.Find("Chad")
	require.NotNil(t, chad)
	require.NotNil(t, chad.GNI)
	assert.Equal(t, 1020.0, *chad.GNI) // thousands separator stripped
	require.NotNil(t, chad.RuralPct)
	assert.Equal(t, 77.7, *chad.RuralPct)
	require.NotNil(t, chad.Fertility1960)
	assert.Equal(t, 6.25, *chad.Fertility1960)
	require.NotNil(t, chad.Fertility2013)
	assert.Equal(t, 6.31, *chad.Fertility2013)

	aruba := rows.Find("Aruba")
	require.NotNil(t, aruba)
	assert.Nil(t, aruba.GNI, "blank cell stays missing")
	assert.Nil(t, aruba.InfantMortality)
	require.NotNil(t, aruba.Imports)
	assert.Equal(t, 43.0, *aruba.Imports)

	assert.Nil(t, rows.Find("Atlantis"))
}

func TestTableBuilderRejectsDuplicateCountry(t *testing.T) {
	dup := `Country Name,GNI per capita
Chad,1020
Chad,1021
`
	builder := NewTableBuilder()
	require.NoError(t, ExtractDataFromCSV(csvFile(t, dup), builder.Add))

	_, err := builder.Table()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate country")
}

func TestTableBuilderRequiresHeader(t *testing.T) {
	builder := NewTableBuilder()
	builder.Add([]string{"no", "header", "here"})

	_, err := builder.Table()
	assert.Error(t, err)
}

func TestParseCell(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"..", nil},
		{"-", nil},
		{"N/A", nil},
		{"not a number", nil},
		{"42", Float(42)},
		{" 42.5 ", Float(42.5)},
		{"1,020.75", Float(1020.75)},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := parseCell(tc.in)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestDatabaseSaveAndLoad(t *testing.T) {
	dbFile := t.TempDir() + "/world-stats.json"

	_, found, err := LoadIfExists(dbFile)
	require.NoError(t, err)
	assert.False(t, found)

	db := &Database{
		DataSource:    "test.csv",
		MembershipURL: "https://example.com/countries",
		Rows:          Table{{Country: "Chad", GNI: Float(1020)}},
		Membership:    []string{"AFRICA", "Chad"},
	}
	require.NoError(t, db.Save(dbFile))

	loaded, found, err := LoadIfExists(dbFile)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, db.MembershipURL, loaded.MembershipURL)
	assert.Equal(t, db.Membership, loaded.Membership)
	require.Len(t, loaded.Rows, 1)
	assert.Equal(t, "Chad", loaded.Rows[0].Country)
	require.NotNil(t, loaded.Rows[0].GNI)
	assert.Equal(t, 1020.0, *loaded.Rows[0].GNI)
	assert.Nil(t, loaded.Rows[0].RuralPct)
}
