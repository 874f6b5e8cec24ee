package convert

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
)

func TestRowToAgingAccount(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"A1"}, series.String, "agrt no."),
		series.New([]string{"Unknown"}, series.String, "dealer id"),
		series.New([]string{"2023-05-10"}, series.String, "submission date"),
		series.New([]string{"NaN"}, series.String, "approval date"),
		series.New([]float64{1000}, series.Float, "loan amt"),
		series.New([]float64{math.NaN()}, series.Float, "dpd"),
		series.New([]float64{2500}, series.Float, "gl bal"),
		series.New([]string{"M0"}, series.String, "aging bucket"),
	)

	account := RowToAgingAccount(&df, 0)

	assert.Equal(t, "A1", account.AgreementNo)
	assert.Equal(t, "Unknown", account.DealerID)

	assert.True(t, account.SubmissionDate.Valid)
	assert.Equal(t, "2023-05-10", account.SubmissionDate.String)
	assert.False(t, account.ApprovalDate.Valid, "NA date must become a SQL null")

	assert.True(t, account.LoanAmount.Valid)
	assert.InDelta(t, 1000, account.LoanAmount.Float64, 1e-9)
	assert.False(t, account.DaysPastDue.Valid, "NA numeric must become a SQL null")

	assert.True(t, account.AgingBucket.Valid)
	assert.Equal(t, "M0", account.AgingBucket.String)

	// Columns absent from the table map to zero values and nulls.
	assert.Equal(t, "", account.Gender)
	assert.False(t, account.Age.Valid)
}

func TestRowToOutstandingLoan(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"B7"}, series.String, "agrt no."),
		series.New([]string{"2023-01-15"}, series.String, "agrt date"),
		series.New([]string{"2024-03-10"}, series.String, "last paid date"),
		series.New([]float64{120}, series.Float, "arrears"),
		series.New([]float64{1}, series.Float, "mth due"),
		series.New([]float64{0}, series.Float, "tenor"),
		series.New([]float64{14}, series.Float, "months completed"),
		series.New([]float64{math.NaN()}, series.Float, "installment progress"),
		series.New([]string{"1 Month Overdue"}, series.String, "risk category"),
	)

	loan := RowToOutstandingLoan(&df, 0)

	assert.Equal(t, "B7", loan.AgreementNo)
	assert.Equal(t, "2023-01-15", loan.AgreementDate.String)
	assert.InDelta(t, 120, loan.Arrears.Float64, 1e-9)
	assert.True(t, loan.Tenor.Valid)
	assert.Zero(t, loan.Tenor.Float64)
	assert.False(t, loan.InstallmentProgress.Valid, "undefined ratio must persist as a SQL null")
	assert.Equal(t, "1 Month Overdue", loan.RiskCategory.String)
}
