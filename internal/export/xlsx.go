// Package export genera el archivo de hoja de cálculo del dashboard.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Datos"

// DefaultFileName devuelve export_YYYY-MM-DD.xlsx con la fecha actual.
func DefaultFileName() string {
	return fmt.Sprintf("export_%s.xlsx", time.Now().Format("2006-01-02"))
}

// WriteXLSX escribe una hoja con fila de encabezados y una fila por
// registro.
func WriteXLSX(w io.Writer, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	writeRow := func(rowIdx int, values []string) error {
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	// Ancho uniforme de columnas, como la exportación original.
	if len(headers) > 0 {
		last, err := excelize.ColumnNumberToName(len(headers))
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, "A", last, 15); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
