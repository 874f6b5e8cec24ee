package portfolio

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveLoanProgress(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"2023-01-15", "2023-01-15", "NaN"}, series.String, "agrt date"),
		series.New([]string{"2024-03-10", "2024-03-10", "2024-03-10"}, series.String, "last paid date"),
		series.New([]float64{28, 0, 28}, series.Float, "tenor"),
	)

	out := DeriveLoanProgress(df)
	require.NoError(t, out.Error())

	months := out.Col("months completed")
	progress := out.Col("installment progress")

	// Jan 2023 to Mar 2024 is 14 calendar months.
	assert.InDelta(t, 14, months.Elem(0).Float(), 1e-9)
	assert.InDelta(t, 0.5, progress.Elem(0).Float(), 1e-9)

	// Zero tenor must not fault; the ratio is simply undefined.
	assert.True(t, progress.Elem(1).IsNA())

	// A missing agreement date leaves both derived cells undefined.
	assert.True(t, months.Elem(2).IsNA())
	assert.True(t, progress.Elem(2).IsNA())
}

func TestDeriveLoanProgressWithoutDateColumns(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{1, 2}, series.Float, "arrears"),
	)

	out := DeriveLoanProgress(df)

	require.NoError(t, out.Error())
	assert.Equal(t, []string{"arrears"}, out.Names())
}

func TestFilterActiveLoans(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"A1", "A2", "A3", "A4"}, series.String, "agrt no."),
		series.New([]float64{0, -5, 120, 3.5}, series.Float, "arrears"),
	)

	out := FilterActiveLoans(df)
	require.NoError(t, out.Error())

	var kept []string
	for i := 0; i < out.Nrow(); i++ {
		kept = append(kept, out.Col("agrt no.").Elem(i).String())
	}
	assert.Equal(t, []string{"A1", "A3", "A4"}, kept)
}
