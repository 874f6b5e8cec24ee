package clean

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/finbyte/hp-portfolio/internal/logger"
	"github.com/finbyte/hp-portfolio/internal/portfolio/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const component = "FieldCleaner"

// CanonicalDateLayout is the storage format every date column is
// standardized to.
const CanonicalDateLayout = "2006-01-02"

// UnknownLabel fills missing cells of categorical columns.
const UnknownLabel = "Unknown"

// naMarker is gota's NA sentinel for string series.
const naMarker = "NaN"

// Input layouts tried in order when standardizing a date cell. Slash dates
// are day-first, dash dates month-first; an ambiguous cell resolves to the
// first layout that parses it.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
	"2/1/2006",
	"01-02-06",
	"2-Jan-06",
	"02-Jan-2006",
	"January 2, 2006",
}

// NormalizeColumns lower-cases and trims header names, drops synthetic index
// columns (blank or "unnamed"-prefixed headers) and keeps the first of any
// columns whose names collide after normalization. The input frame is not
// modified.
func NormalizeColumns(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Error() != nil {
		return df
	}

	seen := make(map[string]bool, df.Ncol())
	cols := make([]series.Series, 0, df.Ncol())
	for _, name := range df.Names() {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if normalized == "" || strings.HasPrefix(normalized, "unnamed") || seen[normalized] {
			continue
		}
		seen[normalized] = true

		s := df.Col(name).Copy()
		s.Name = normalized
		cols = append(cols, s)
	}

	return dataframe.New(cols...)
}

// Apply runs the full per-dataset cleaning pass: date standardization,
// numeric coercion, categorical fill, the bound row filter and exact
// duplicate removal. Declared columns missing from the table are skipped.
// The returned frame never aliases the input.
func Apply(df dataframe.DataFrame, roles types.ColumnRoles, appLogger *logger.Logger) dataframe.DataFrame {
	out := df.Copy()

	for _, col := range roles.Dates {
		out = StandardizeDates(out, col)
	}
	for _, col := range roles.Numerics {
		out = CoerceNumeric(out, col)
	}
	for _, col := range roles.Categoricals {
		out = FillCategorical(out, col)
	}

	if roles.Bound.Column != "" {
		before := out.Nrow()
		out = FilterBound(out, roles.Bound)
		if dropped := before - out.Nrow(); dropped > 0 {
			appLogger.Info(component, "Bound filter dropped rows: column=%s range=(%v,%v] dropped=%d",
				roles.Bound.Column, roles.Bound.Min, roles.Bound.Max, dropped)
		}
	}

	before := out.Nrow()
	out = DropDuplicates(out)
	if dropped := before - out.Nrow(); dropped > 0 {
		appLogger.Info(component, "Duplicate rows removed: dropped=%d", dropped)
	}

	appLogger.Debug(component, "Cleaning pass complete: rows=%d cols=%d", out.Nrow(), out.Ncol())
	return out
}

// StandardizeDates rewrites the named column as YYYY-MM-DD strings.
// Unparseable cells become NA rather than failing the column.
func StandardizeDates(df dataframe.DataFrame, col string) dataframe.DataFrame {
	if !hasColumn(df, col) || df.Error() != nil {
		return df
	}

	src := df.Col(col)
	vals := make([]string, src.Len())
	for i := 0; i < src.Len(); i++ {
		elem := src.Elem(i)
		if elem.IsNA() {
			vals[i] = naMarker
			continue
		}
		vals[i] = standardizeDate(elem.String())
	}

	return df.Mutate(series.New(vals, series.String, col))
}

func standardizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return naMarker
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(CanonicalDateLayout)
		}
	}
	return naMarker
}

// CoerceNumeric rewrites the named column as a float series. Unparseable
// cells become NA.
func CoerceNumeric(df dataframe.DataFrame, col string) dataframe.DataFrame {
	if !hasColumn(df, col) || df.Error() != nil {
		return df
	}

	src := df.Col(col)
	vals := make([]float64, src.Len())
	for i := 0; i < src.Len(); i++ {
		elem := src.Elem(i)
		if elem.IsNA() {
			vals[i] = math.NaN()
			continue
		}
		vals[i] = parseNumeric(elem.String())
	}

	return df.Mutate(series.New(vals, series.Float, col))
}

func parseNumeric(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	// Thousands separators show up in exported amount columns.
	raw = strings.ReplaceAll(raw, ",", "")
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return val
}

// FillCategorical replaces NA and blank cells of the named column with the
// Unknown label.
func FillCategorical(df dataframe.DataFrame, col string) dataframe.DataFrame {
	if !hasColumn(df, col) || df.Error() != nil {
		return df
	}

	src := df.Col(col)
	vals := make([]string, src.Len())
	for i := 0; i < src.Len(); i++ {
		elem := src.Elem(i)
		if elem.IsNA() || strings.TrimSpace(elem.String()) == "" {
			vals[i] = UnknownLabel
			continue
		}
		vals[i] = elem.String()
	}

	return df.Mutate(series.New(vals, series.String, col))
}

// FilterBound keeps only rows where bound.Min < value <= bound.Max. NA values
// fail both comparisons and are dropped. A missing column leaves the table
// untouched.
func FilterBound(df dataframe.DataFrame, bound types.BoundFilter) dataframe.DataFrame {
	if !hasColumn(df, bound.Column) || df.Error() != nil {
		return df
	}

	// Chained Filter calls combine with AND.
	return df.Filter(dataframe.F{
		Colname:    bound.Column,
		Comparator: series.Greater,
		Comparando: bound.Min,
	}).Filter(dataframe.F{
		Colname:    bound.Column,
		Comparator: series.LessEq,
		Comparando: bound.Max,
	})
}

// DropDuplicates removes rows whose cells all equal an earlier row, keeping
// the first occurrence and preserving the relative order of survivors.
func DropDuplicates(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Error() != nil || df.Nrow() == 0 {
		return df
	}

	records := df.Records()
	seen := make(map[string]struct{}, len(records)-1)
	keep := make([]int, 0, len(records)-1)
	for i, row := range records[1:] {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}

	if len(keep) == df.Nrow() {
		return df.Copy()
	}
	return df.Subset(keep)
}

func hasColumn(df dataframe.DataFrame, col string) bool {
	for _, name := range df.Names() {
		if name == col {
			return true
		}
	}
	return false
}
