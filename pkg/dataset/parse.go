package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Indicator column headers, matched by substring against the table's header
// row. The source exports vary in exact wording ("Fertility rate, total
// (births per woman) 1960" and friends), so substring matching keeps the
// loader tolerant the same way the source tables are hunted down by partial
// title.
var indicatorHeaders = []struct {
	Match string
	Set   func(*Row, *float64)
}{
	{"GNI", func(r *Row, v *float64) { r.GNI = v }},
	{"Imports", func(r *Row, v *float64) { r.Imports = v }},
	{"Exports", func(r *Row, v *float64) { r.Exports = v }},
	{"Fertility rate 1960", func(r *Row, v *float64) { r.Fertility1960 = v }},
	{"Fertility rate 2013", func(r *Row, v *float64) { r.Fertility2013 = v }},
	{"Infant mortality", func(r *Row, v *float64) { r.InfantMortality = v }},
	{"Rural population", func(r *Row, v *float64) { r.RuralPct = v }},
}

// TableBuilder turns raw sheet rows into a Table. The first row naming a
// Country column becomes the header; every later row with a non-empty
// country cell becomes a Row. Blank cells and the usual not-available
// placeholders stay nil.
type TableBuilder struct {
	countryCol int
	cols       map[int]func(*Row, *float64)
	rows       Table
	seen       map[string]bool
	err        error
}

func NewTableBuilder() *TableBuilder {
	return &TableBuilder{countryCol: -1, seen: make(map[string]bool)}
}

// Add consumes one raw row. Designed to be passed straight to
// ExtractDataFromFile as the row handler.
func (b *TableBuilder) Add(cols []string) {
	if b.err != nil {
		return
	}
	if b.countryCol < 0 {
		b.tryHeader(cols)
		return
	}
	if b.countryCol >= len(cols) {
		return
	}

	country := strings.TrimSpace(cols[b.countryCol])
	if country == "" {
		return
	}
	if b.seen[country] {
		b.err = fmt.Errorf("duplicate country row: %q", country)
		return
	}
	b.seen[country] = true

	row := &Row{Country: country}
	for i, set := range b.cols {
		if i >= len(cols) {
			continue
		}
		set(row, parseCell(cols[i]))
	}
	b.rows = append(b.rows, row)
}

func (b *TableBuilder) tryHeader(cols []string) {
	for i, c := range cols {
		if strings.Contains(c, "Country") {
			b.countryCol = i
			break
		}
	}
	if b.countryCol < 0 {
		return
	}

	b.cols = make(map[int]func(*Row, *float64))
	for i, c := range cols {
		for _, h := range indicatorHeaders {
			if strings.Contains(c, h.Match) {
				b.cols[i] = h.Set
				break
			}
		}
	}
}

// Table returns the accumulated rows, or the first error hit while adding.
func (b *TableBuilder) Table() (Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.countryCol < 0 {
		return nil, fmt.Errorf("no header row with a Country column found")
	}
	return b.rows, nil
}

func parseCell(s string) *float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "", "..", "-", "N/A", "NA":
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
