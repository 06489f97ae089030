package continent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAppliesRule(t *testing.T) {
	rules := []RewriteRule{Rule(`^Cape Verde$`, "Cabo Verde")}

	got := Normalize([]string{"Cape Verde"}, rules)
	assert.Equal(t, []string{"Cabo Verde"}, got)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	rules := []RewriteRule{Rule(`^Cape Verde$`, "Cabo Verde")}

	once := Normalize([]string{"AFRICA", "Cape Verde", "Chad"}, rules)
	twice := Normalize(once, rules)
	assert.Equal(t, once, twice)
}

func TestNormalizeAppliesRulesInOrder(t *testing.T) {
	// The second rule only matches the first rule's output.
	rules := []RewriteRule{
		Rule(`^Burma$`, "Myanmar"),
		Rule(`^Myanmar$`, "Myanmar (Burma)"),
	}

	got := Normalize([]string{"Burma"}, rules)
	assert.Equal(t, []string{"Myanmar (Burma)"}, got)
}

func TestNormalizePreservesLengthAndOrder(t *testing.T) {
	in := []string{"AFRICA", "Cape Verde", "Chad", "EUROPE", "France"}
	got := Normalize(in, DefaultRewriteRules)

	require.Len(t, got, len(in))
	assert.Equal(t, "AFRICA", got[0])
	assert.Equal(t, "Chad", got[2])
	assert.Equal(t, "France", got[4])
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := []string{"Cape Verde"}
	Normalize(in, DefaultRewriteRules)
	assert.Equal(t, []string{"Cape Verde"}, in)
}

func TestDefaultRulesLeaveMarkersAlone(t *testing.T) {
	markers := []string{"AFRICA", "ASIA", "EUROPE", "N. AMERICA", "OCEANIA", "S. AMERICA"}
	got := Normalize(markers, DefaultRewriteRules)
	assert.Equal(t, markers, got)
}

func TestFlattenHTML(t *testing.T) {
	html := `<html><head><style>body { color: red; }</style></head>
<body>
<h2>AFRICA</h2>
<ul><li><a href="/algeria">Algeria</a></li><li>Chad</li></ul>
<h2>EUROPE</h2>
<p>France</p>
<script>var x = "<b>ignored</b>";</script>
</body></html>`

	got := FlattenHTML(html)
	assert.Equal(t, []string{"AFRICA", "Algeria", "Chad", "EUROPE", "France"}, got)
}
