package export

import (
	"path/filepath"
	"testing"

	"github.com/finbyte/hp-portfolio/internal/logger"
	"github.com/finbyte/hp-portfolio/internal/portfolio/loader"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return &logger.Logger{MinLevel: logger.LevelError}
}

func TestWriteWorkbookRoundTrip(t *testing.T) {
	aging := dataframe.New(
		series.New([]string{"A1", "A2"}, series.String, "agrt no."),
		series.New([]string{"M0", "M1: 1-30 days"}, series.String, "aging bucket"),
	)
	outstanding := dataframe.New(
		series.New([]string{"B1"}, series.String, "agrt no."),
		series.New([]string{"Current"}, series.String, "risk category"),
	)

	path := filepath.Join(t.TempDir(), "hp_data_output.xlsx")
	err := WriteWorkbook(path, []Sheet{
		{Name: "HP Aging", Frame: aging},
		{Name: "HP OS", Frame: outstanding},
	}, testLogger())
	require.NoError(t, err)

	gotAging, err := loader.Load(path, "HP Aging", testLogger())
	require.NoError(t, err)
	assert.Equal(t, aging.Records(), gotAging.Records())

	gotOutstanding, err := loader.Load(path, "HP OS", testLogger())
	require.NoError(t, err)
	assert.Equal(t, outstanding.Records(), gotOutstanding.Records())
}

func TestWriteWorkbookRejectsEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	err := WriteWorkbook(path, nil, testLogger())

	require.Error(t, err)
}
