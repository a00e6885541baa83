package output

import (
	"fmt"
	"unicode/utf16"

	"github.com/xuri/excelize/v2"

	"github.com/phrazzld/task-extract-api/internal/domain"
)

const (
	// SheetName is the worksheet that holds exported tasks.
	SheetName = "Tasks"

	// MaxCellChars is the longest text a worksheet cell accepts. Longer
	// values are cut to this many characters.
	MaxCellChars = excelize.TotalCellChars

	// XLSXContentType is the media type of WriteXLSX output.
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// XLSXHeaders are the column titles of the exported worksheet.
var XLSXHeaders = []string{
	"Task Number",
	"Task Title",
	"Personnel Required",
	"Energy Isolation",
	"Time Required",
	"Consumables",
	"Tools Required",
	"Summary",
}

// WriteXLSX renders one row per task, in result order, below a header row.
func WriteXLSX(result *domain.ExtractionResult) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// rename the default sheet so the workbook has exactly one
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	write := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(SheetName, cell, v)
	}

	for i, h := range XLSXHeaders {
		if err := write(i+1, 1, h); err != nil {
			return nil, fmt.Errorf("xlsx header: %w", err)
		}
	}

	if result != nil {
		for i, task := range result.Tasks {
			row := i + 2
			values := make([]string, 0, len(XLSXHeaders))
			values = append(values, task.Number, task.Title)
			for _, key := range domain.FieldKeys {
				values = append(values, task.Details.Get(key))
			}
			for col, v := range values {
				if err := write(col+1, row, truncateCell(v)); err != nil {
					return nil, fmt.Errorf("xlsx row %d: %w", row, err)
				}
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 12)
	_ = f.SetColWidth(SheetName, "B", "B", 36)
	_ = f.SetColWidth(SheetName, "C", "H", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// truncateCell cuts v to MaxCellChars characters, counted as UTF-16 code
// units the way spreadsheet applications count them.
func truncateCell(v string) string {
	if len(v) <= MaxCellChars {
		return v
	}
	n := 0
	for i, r := range v {
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		if n+w > MaxCellChars {
			return v[:i]
		}
		n += w
	}
	return v
}
