package dataset

// Row holds one country's development indicators. Numeric fields are
// pointers: the source table leaves cells blank for countries without data,
// and rows with a missing selected field are excluded from analysis rather
// than imputed.
type Row struct {
	Country         string
	GNI             *float64 // GNI per capita, current US$
	Imports         *float64 // imports of goods and services, % of GDP
	Exports         *float64 // exports of goods and services, % of GDP
	Fertility1960   *float64 // births per woman, 1960
	Fertility2013   *float64 // births per woman, 2013
	InfantMortality *float64 // deaths per 1,000 live births
	RuralPct        *float64 // rural population, % of total
}

// Table is the primary dataset, one row per country. Country names are
// unique within the table.
type Table []*Row

func (t Table) Find(country string) *Row {
	for _, r := range t {
		if r.Country == country {
			return r
		}
	}
	return nil
}

// Float parses convenience for building rows in code and tests.
func Float(v float64) *float64 { return &v }
