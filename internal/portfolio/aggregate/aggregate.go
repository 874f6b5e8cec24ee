package aggregate

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BucketSummary holds the aggregates of one bucket label. Empty buckets are
// reported with Count 0 and Sum 0 rather than omitted.
type BucketSummary struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
}

// PortfolioSummary carries the derived metrics of a cleaned active-loan
// table.
type PortfolioSummary struct {
	TotalActiveLoans           int     `json:"total_active_loans"`
	TotalArrears               float64 `json:"total_arrears"`
	AverageArrears             float64 `json:"average_arrears"`
	PercentOverdue             float64 `json:"percent_overdue"`
	AverageInstallmentProgress float64 `json:"average_installment_progress"`
}

// Summarize groups rows by bucketCol and reports, per declared label and in
// declared order, the record count and the sum of sumCol over the group.
// NA sumCol cells contribute nothing to the sum; rows with a NA bucket label
// belong to no group. A structurally absent bucket or sum column is a
// contract violation and returns an error.
func Summarize(df dataframe.DataFrame, bucketCol, sumCol string, labels []string) ([]BucketSummary, error) {
	if df.Error() != nil {
		return nil, df.Error()
	}
	if !hasColumn(df, bucketCol) {
		return nil, fmt.Errorf("groupby column %q is absent from the table", bucketCol)
	}
	if !hasColumn(df, sumCol) {
		return nil, fmt.Errorf("sum column %q is absent from the table", sumCol)
	}

	out := make([]BucketSummary, len(labels))
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		out[i] = BucketSummary{Label: label}
		index[label] = i
	}

	buckets := df.Col(bucketCol)
	sums := df.Col(sumCol)
	for i := 0; i < buckets.Len(); i++ {
		elem := buckets.Elem(i)
		if elem.IsNA() {
			continue
		}
		pos, declared := index[elem.String()]
		if !declared {
			continue
		}
		out[pos].Count++
		if v := sums.Elem(i); !v.IsNA() {
			out[pos].Sum += v.Float()
		}
	}

	return out, nil
}

// Counts groups rows by bucketCol and reports the record count per declared
// label, in declared order.
func Counts(df dataframe.DataFrame, bucketCol string, labels []string) ([]BucketSummary, error) {
	if df.Error() != nil {
		return nil, df.Error()
	}
	if !hasColumn(df, bucketCol) {
		return nil, fmt.Errorf("groupby column %q is absent from the table", bucketCol)
	}

	out := make([]BucketSummary, len(labels))
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		out[i] = BucketSummary{Label: label}
		index[label] = i
	}

	buckets := df.Col(bucketCol)
	for i := 0; i < buckets.Len(); i++ {
		elem := buckets.Elem(i)
		if elem.IsNA() {
			continue
		}
		if pos, declared := index[elem.String()]; declared {
			out[pos].Count++
		}
	}

	return out, nil
}

// SummarizePortfolio computes the portfolio risk metrics over a table that
// has already been restricted to active loans (arrears >= 0). Percentages
// are reported on a 0-100 scale. Means skip NA cells; the overdue share uses
// the full row count as denominator so loans with unknown arrears count as
// not overdue.
func SummarizePortfolio(df dataframe.DataFrame, arrearsCol, progressCol string) (PortfolioSummary, error) {
	if df.Error() != nil {
		return PortfolioSummary{}, df.Error()
	}
	if !hasColumn(df, arrearsCol) {
		return PortfolioSummary{}, fmt.Errorf("arrears column %q is absent from the table", arrearsCol)
	}
	if !hasColumn(df, progressCol) {
		return PortfolioSummary{}, fmt.Errorf("progress column %q is absent from the table", progressCol)
	}

	arrears := presentValues(df.Col(arrearsCol))
	progress := presentValues(df.Col(progressCol))

	summary := PortfolioSummary{TotalActiveLoans: df.Nrow()}
	summary.TotalArrears = floats.Sum(arrears)
	if len(arrears) > 0 {
		summary.AverageArrears = stat.Mean(arrears, nil)
	}
	if df.Nrow() > 0 {
		overdue := 0
		for _, v := range arrears {
			if v > 0 {
				overdue++
			}
		}
		summary.PercentOverdue = float64(overdue) / float64(df.Nrow()) * 100
	}
	if len(progress) > 0 {
		summary.AverageInstallmentProgress = stat.Mean(progress, nil) * 100
	}

	return summary, nil
}

// presentValues collects the non-NA values of a numeric series.
func presentValues(s series.Series) []float64 {
	vals := make([]float64, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		elem := s.Elem(i)
		if elem.IsNA() {
			continue
		}
		if v := elem.Float(); !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

func hasColumn(df dataframe.DataFrame, col string) bool {
	for _, name := range df.Names() {
		if name == col {
			return true
		}
	}
	return false
}
