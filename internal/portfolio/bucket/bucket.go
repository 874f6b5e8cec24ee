package bucket

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Bucketer assigns each row an ordinal label derived from one numeric column
// via fixed bin edges. Intervals are left-open, right-closed; a value on a
// boundary lands in the lower bucket and NA source values get no label.
type Bucketer struct {
	Source string
	Target string
	// Edges holds len(Labels)+1 ascending boundaries; the last one is
	// usually +Inf.
	Edges  []float64
	Labels []string
	// Bounded leaves values at or below the first edge, or above the
	// last edge, without a label. When false the first interval absorbs
	// everything at or below its upper edge and the last label covers
	// everything past the final edge, so the edges partition the whole
	// numeric line.
	Bounded bool
}

// Aging buckets days-past-due into monthly delinquency stages.
var Aging = Bucketer{
	Source: "dpd",
	Target: "aging bucket",
	Edges:  []float64{-1, 0, 30, 60, 90, math.Inf(1)},
	Labels: []string{"M0", "M1: 1-30 days", "M2: 31-60 days", "M3: 61-90 days", ">M3: >90 days"},
}

// Risk buckets months-overdue into portfolio risk categories.
var Risk = Bucketer{
	Source: "mth due",
	Target: "risk category",
	Edges:  []float64{math.Inf(-1), 0, 1, 2, math.Inf(1)},
	Labels: []string{"Current", "1 Month Overdue", "2 Months Overdue", "3+ Months Overdue"},
}

// Progress buckets the installment-progress ratio into quartile bands.
// Ratios outside (0, 1] (no months completed yet, or more months completed
// than the tenor) belong to no band and stay out of the distribution.
var Progress = Bucketer{
	Source:  "installment progress",
	Target:  "progress band",
	Edges:   []float64{0, 0.25, 0.5, 0.75, 1.0},
	Labels:  []string{"0-25%", "25-50%", "50-75%", "75-100%"},
	Bounded: true,
}

// Apply attaches the bucketer's target column to the table. A missing source
// column is a contract violation: buckets cannot be derived and no sensible
// partial result exists.
func (b Bucketer) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Error() != nil {
		return dataframe.DataFrame{}, df.Error()
	}

	src, err := sourceColumn(df, b.Source)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	labels := make([]string, src.Len())
	for i := 0; i < src.Len(); i++ {
		elem := src.Elem(i)
		if elem.IsNA() {
			labels[i] = "NaN"
			continue
		}
		label, ok := b.Label(elem.Float())
		if !ok {
			labels[i] = "NaN"
			continue
		}
		labels[i] = label
	}

	out := df.Mutate(series.New(labels, series.String, b.Target))
	return out, out.Error()
}

// Label classifies a single value. ok is false only for bounded bucketers,
// when the value falls outside the declared edges.
func (b Bucketer) Label(v float64) (string, bool) {
	if b.Bounded && (v <= b.Edges[0] || v > b.Edges[len(b.Edges)-1]) {
		return "", false
	}
	if v <= b.Edges[1] {
		return b.Labels[0], true
	}
	for i := 1; i < len(b.Labels); i++ {
		if v > b.Edges[i] && v <= b.Edges[i+1] {
			return b.Labels[i], true
		}
	}
	// Only reachable when the terminal edge is finite.
	return b.Labels[len(b.Labels)-1], true
}

func sourceColumn(df dataframe.DataFrame, name string) (series.Series, error) {
	for _, col := range df.Names() {
		if col == name {
			return df.Col(name), nil
		}
	}
	return series.Series{}, fmt.Errorf("bucket source column %q is absent from the table", name)
}
