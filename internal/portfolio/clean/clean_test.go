package clean

import (
	"regexp"
	"testing"

	"github.com/finbyte/hp-portfolio/internal/logger"
	"github.com/finbyte/hp-portfolio/internal/portfolio/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return &logger.Logger{MinLevel: logger.LevelError}
}

func frameFromRecords(records [][]string) dataframe.DataFrame {
	return dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
}

func TestNormalizeColumns(t *testing.T) {
	df := frameFromRecords([][]string{
		{"  Agrt No. ", "LOAN AMT", "Unnamed: 0", "Gender"},
		{"A1", "1000", "0", "M"},
	})

	out := NormalizeColumns(df)

	require.NoError(t, out.Error())
	assert.Equal(t, []string{"agrt no.", "loan amt", "gender"}, out.Names())
	assert.Equal(t, 1, out.Nrow())
}

func TestNormalizeColumnsKeepsFirstOnCollision(t *testing.T) {
	df := frameFromRecords([][]string{
		{"Age", " AGE "},
		{"10", "20"},
	})

	out := NormalizeColumns(df)

	require.NoError(t, out.Error())
	assert.Equal(t, []string{"age"}, out.Names())
	assert.Equal(t, "10", out.Col("age").Elem(0).String())
}

func TestStandardizeDates(t *testing.T) {
	df := frameFromRecords([][]string{
		{"submission date"},
		{"2023-05-10"},
		{"10/05/2023"},
		{"not a date"},
		{""},
	})

	out := StandardizeDates(df, "submission date")
	require.NoError(t, out.Error())

	col := out.Col("submission date")
	canonical := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	assert.Equal(t, "2023-05-10", col.Elem(0).String())
	assert.Equal(t, "2023-05-10", col.Elem(1).String())
	assert.True(t, canonical.MatchString(col.Elem(0).String()))
	assert.True(t, canonical.MatchString(col.Elem(1).String()))
	assert.True(t, col.Elem(2).IsNA(), "unparseable date must become NA")
	assert.True(t, col.Elem(3).IsNA(), "blank date must become NA")
}

func TestStandardizeDatesMissingColumnIsSkipped(t *testing.T) {
	df := frameFromRecords([][]string{
		{"agrt no."},
		{"A1"},
	})

	out := StandardizeDates(df, "approval date")

	require.NoError(t, out.Error())
	assert.Equal(t, df.Names(), out.Names())
}

func TestCoerceNumeric(t *testing.T) {
	df := frameFromRecords([][]string{
		{"loan amt"},
		{"1,200.50"},
		{"42"},
		{"n/a"},
		{""},
	})

	out := CoerceNumeric(df, "loan amt")
	require.NoError(t, out.Error())

	col := out.Col("loan amt")
	assert.Equal(t, series.Float, col.Type())
	assert.InDelta(t, 1200.50, col.Elem(0).Float(), 1e-9)
	assert.InDelta(t, 42.0, col.Elem(1).Float(), 1e-9)
	assert.True(t, col.Elem(2).IsNA(), "unparseable numeric must become NA")
	assert.True(t, col.Elem(3).IsNA(), "blank numeric must become NA")
}

func TestFillCategorical(t *testing.T) {
	df := frameFromRecords([][]string{
		{"gender"},
		{"M"},
		{""},
		{"  "},
	})

	out := FillCategorical(df, "gender")
	require.NoError(t, out.Error())

	col := out.Col("gender")
	assert.Equal(t, "M", col.Elem(0).String())
	assert.Equal(t, UnknownLabel, col.Elem(1).String())
	assert.Equal(t, UnknownLabel, col.Elem(2).String())
}

func TestFilterBoundEdges(t *testing.T) {
	df := frameFromRecords([][]string{
		{"agrt no.", "age"},
		{"A1", "0"},
		{"A2", "1"},
		{"A3", "50"},
		{"A4", "100"},
		{"A5", "101"},
		{"A6", ""},
	})
	df = CoerceNumeric(df, "age")

	out := FilterBound(df, types.BoundFilter{Column: "age", Min: 0, Max: 100})
	require.NoError(t, out.Error())

	var kept []string
	for i := 0; i < out.Nrow(); i++ {
		kept = append(kept, out.Col("agrt no.").Elem(i).String())
	}
	assert.Equal(t, []string{"A2", "A3", "A4"}, kept)
}

func TestDropDuplicatesKeepsFirstAndPreservesOrder(t *testing.T) {
	df := frameFromRecords([][]string{
		{"agrt no.", "dpd"},
		{"A1", "10"},
		{"A2", "20"},
		{"A1", "10"},
		{"A3", "30"},
		{"A2", "20"},
	})

	out := DropDuplicates(df)
	require.NoError(t, out.Error())
	require.Equal(t, 3, out.Nrow())

	var order []string
	for i := 0; i < out.Nrow(); i++ {
		order = append(order, out.Col("agrt no.").Elem(i).String())
	}
	assert.Equal(t, []string{"A1", "A2", "A3"}, order)
}

func TestDropDuplicatesIsIdempotent(t *testing.T) {
	df := frameFromRecords([][]string{
		{"agrt no.", "dpd"},
		{"A1", "10"},
		{"A1", "10"},
		{"A2", "20"},
	})

	once := DropDuplicates(df)
	twice := DropDuplicates(once)

	assert.Equal(t, once.Records(), twice.Records())
}

func TestApplyDoesNotAliasInput(t *testing.T) {
	df := frameFromRecords([][]string{
		{"gender"},
		{""},
	})

	out := Apply(df, types.ColumnRoles{Categoricals: []string{"gender"}}, testLogger())

	assert.Equal(t, UnknownLabel, out.Col("gender").Elem(0).String())
	assert.Equal(t, "", df.Col("gender").Elem(0).String(), "caller's table must keep the pre-cleaning value")
}

func TestApplyFullPass(t *testing.T) {
	df := frameFromRecords([][]string{
		{"agrt no.", "submission date", "loan amt", "gender", "age"},
		{"A1", "10/05/2023", "1,000", "", "30"},
		{"A2", "bogus", "oops", "F", "0"},
		{"A1", "10/05/2023", "1,000", "", "30"},
	})

	out := Apply(df, types.RolesFor(types.HPAging), testLogger())
	require.NoError(t, out.Error())

	// A2 fails the age bound, the repeated A1 is a duplicate.
	require.Equal(t, 1, out.Nrow())
	assert.Equal(t, "A1", out.Col("agrt no.").Elem(0).String())
	assert.Equal(t, "2023-05-10", out.Col("submission date").Elem(0).String())
	assert.InDelta(t, 1000.0, out.Col("loan amt").Elem(0).Float(), 1e-9)
	assert.Equal(t, UnknownLabel, out.Col("gender").Elem(0).String())
}
