package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Sheet1"

// ExportXLSX writes the same table as Export into a single-sheet workbook.
// Numeric cells stay numeric.
func ExportXLSX(w io.Writer, points []FeaturePoint, headers []string) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: header: %w", err)
	}

	lonCol, latCol, altCol := coordinateColumns(headers)
	for r, p := range points {
		row := make([]any, len(headers))
		for i, h := range headers {
			switch {
			case lonCol != "" && h == lonCol:
				row[i] = p.Lon
			case latCol != "" && h == latCol:
				row[i] = p.Lat
			case altCol != "" && h == altCol:
				row[i] = p.Alt
			default:
				v := p.Attributes[h]
				if v == nil {
					v = ""
				}
				row[i] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("xlsx: row %d: %w", r+2, err)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", r+2, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}
