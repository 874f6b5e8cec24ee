package export

import (
	"fmt"
	"strconv"

	"github.com/finbyte/hp-portfolio/internal/logger"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// Sheet pairs a cleaned table with the workbook sheet it is written to.
type Sheet struct {
	Name  string
	Frame dataframe.DataFrame
}

// WriteWorkbook saves the given tables into one .xlsx file, one sheet per
// table, header row first. NA cells are written as empty cells.
func WriteWorkbook(path string, sheets []Sheet, appLogger *logger.Logger) error {
	const component = "WorkbookWriter"

	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %v", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("failed to create sheet %q: %v", sheet.Name, err)
			}
		}

		if err := writeFrame(f, sheet.Name, sheet.Frame); err != nil {
			return err
		}
		appLogger.Debug(component, "Sheet written: name=%s rows=%d", sheet.Name, sheet.Frame.Nrow())
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %v", path, err)
	}

	appLogger.Info(component, "Workbook saved: path=%s sheets=%d", path, len(sheets))
	return nil
}

func writeFrame(f *excelize.File, sheetName string, df dataframe.DataFrame) error {
	numeric := make([]bool, df.Ncol())
	for i, t := range df.Types() {
		numeric[i] = t == series.Float || t == series.Int
	}

	records := df.Records()
	for r, record := range records {
		cells := make([]interface{}, len(record))
		for c, value := range record {
			// gota renders NA cells as "NaN"; the workbook carries
			// them as blanks.
			if r > 0 && value == "NaN" {
				cells[c] = nil
				continue
			}
			if r > 0 && numeric[c] {
				if v, err := strconv.ParseFloat(value, 64); err == nil {
					cells[c] = v
					continue
				}
			}
			cells[c] = value
		}

		anchor, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d of sheet %q: %v", r+1, sheetName, err)
		}
		if err := f.SetSheetRow(sheetName, anchor, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of sheet %q: %v", r+1, sheetName, err)
		}
	}
	return nil
}
