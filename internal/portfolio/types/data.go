package types

type Dataset int

const (
	HPAging Dataset = iota
	HPOutstanding
)

var DatasetNames = map[Dataset]string{
	HPAging:       "HP Aging",
	HPOutstanding: "HP OS",
}

// ColumnRoles declares the semantic type of each known column of a dataset
// after header normalization (lower-cased, trimmed names). Columns listed
// here but absent from a loaded table are skipped by the cleaner.
type ColumnRoles struct {
	// Dates are standardized to YYYY-MM-DD strings; unparseable cells
	// become NA.
	Dates []string

	// Numerics are coerced to float columns; unparseable cells become NA.
	Numerics []string

	// Categoricals have NA or empty cells replaced with "Unknown".
	Categoricals []string

	// Bound describes a row filter on one numeric column: rows survive
	// only when Min < value <= Max. A NA value fails the comparison and
	// the row is dropped. Empty Column means no bound filter.
	Bound BoundFilter
}

type BoundFilter struct {
	Column string
	Min    float64
	Max    float64
}

var rolesForDataset = map[Dataset]ColumnRoles{
	HPAging: {
		Dates:        []string{"submission date", "approval date"},
		Numerics:     []string{"loan amt", "mthly instal", "arrears amt", "dpd", "gl bal", "age"},
		Categoricals: []string{"gender", "dealer id", "occupation"},
		Bound:        BoundFilter{Column: "age", Min: 0, Max: 100},
	},
	HPOutstanding: {
		Dates:    []string{"agrt date", "last paid date"},
		Numerics: []string{"arrears", "mth due", "tenor"},
	},
}

func RolesFor(d Dataset) ColumnRoles {
	return rolesForDataset[d]
}
