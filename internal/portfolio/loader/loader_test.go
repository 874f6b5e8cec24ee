package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finbyte/hp-portfolio/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return &logger.Logger{MinLevel: logger.LevelError}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load("portfolio.txt", "", testLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xlsx"), "", testLogger())

	require.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hp_aging.csv")
	content := "Agrt No.,DPD,GL Bal\nA1,10,1000\nA2,45,2500\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	df, err := Load(path, "", testLogger())
	require.NoError(t, err)

	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"Agrt No.", "DPD", "GL Bal"}, df.Names())
	assert.Equal(t, "A2", df.Col("Agrt No.").Elem(1).String())
}

func TestLoadCSVEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("Agrt No.,DPD\n"), 0o644))

	_, err := Load(path, "", testLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}
