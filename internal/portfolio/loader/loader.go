package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/finbyte/hp-portfolio/internal/logger"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Load reads a named sheet from a spreadsheet file into a string-typed
// DataFrame. Type coercion is left to the cleaning stage so a misdetected
// column can never abort a load. sheetName "" selects the first sheet.
func Load(path, sheetName string, appLogger *logger.Logger) (dataframe.DataFrame, error) {
	const component = "TabularLoader"

	var (
		df  dataframe.DataFrame
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		df, err = loadXLSX(path, sheetName)
	case ".xls":
		df, err = loadXLS(path, sheetName)
	case ".csv":
		df, err = loadCSV(path)
	default:
		return dataframe.DataFrame{}, fmt.Errorf("unsupported file format %q: want .xls, .xlsx or .csv", ext)
	}

	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to build table from %s: %v", path, df.Error())
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("table loaded from %s is empty", path)
	}

	appLogger.Info(component, "Table loaded: path=%s rows=%d cols=%d", path, df.Nrow(), df.Ncol())
	return df, nil
}

func loadXLSX(path, sheetName string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %v", path, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read sheet %q from %s: %v", sheetName, path, err)
	}

	return recordsToFrame(rows)
}

func loadXLS(path, sheetName string) (dataframe.DataFrame, error) {
	workbook, err := xls.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %v", path, err)
	}

	sheetIdx := 0
	if sheetName != "" {
		sheetIdx = -1
		for i, sheet := range workbook.GetSheets() {
			if sheet.GetName() == sheetName {
				sheetIdx = i
				break
			}
		}
		if sheetIdx < 0 {
			return dataframe.DataFrame{}, fmt.Errorf("sheet %q not found in %s", sheetName, path)
		}
	}

	sheet, err := workbook.GetSheet(sheetIdx)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read sheet %q from %s: %v", sheetName, path, err)
	}

	records := make([][]string, 0, sheet.GetNumberRows())
	for i := 0; i < sheet.GetNumberRows(); i++ {
		row, err := sheet.GetRow(i)
		if err != nil {
			continue
		}
		cells := row.GetCols()
		record := make([]string, len(cells))
		for j, cell := range cells {
			record[j] = cell.GetString()
		}
		records = append(records, record)
	}

	return recordsToFrame(records)
}

func loadCSV(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %v", path, err)
	}
	defer file.Close()

	// Portfolio CSV exports come out of the same legacy tooling as the
	// spreadsheets and use Windows1252 encoding.
	decoded := charmap.Windows1252.NewDecoder().Reader(file)
	df := dataframe.ReadCSV(decoded,
		dataframe.WithLazyQuotes(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse CSV %s: %v", path, df.Error())
	}
	return df, nil
}

// recordsToFrame turns raw sheet rows (header first) into a string-typed
// DataFrame. Sheet readers trim trailing empty cells, so short rows are
// padded back to header width.
func recordsToFrame(records [][]string) (dataframe.DataFrame, error) {
	if len(records) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("sheet has no data rows")
	}

	width := len(records[0])
	padded := make([][]string, 0, len(records))
	for _, record := range records {
		if len(record) < width {
			grown := make([]string, width)
			copy(grown, record)
			record = grown
		} else if len(record) > width {
			record = record[:width]
		}
		padded = append(padded, record)
	}

	df := dataframe.LoadRecords(padded,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	return df, df.Error()
}
