package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/phrazzld/task-extract-api/internal/domain"
)

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	return rows
}

func TestWriteXLSX(t *testing.T) {
	res := domain.NewExtractionResult()
	res.Tasks = append(res.Tasks,
		domain.TaskRecord{
			Number: "1.01",
			Title:  "Replace Filter",
			Details: domain.TaskDetails{
				PersonnelRequired: "2 technicians",
				TimeRequired:      "30 minutes",
				Summary:           "swap cartridge",
			},
		},
		domain.TaskRecord{Number: "1.02", Title: "Check Belt"},
	)

	data, err := WriteXLSX(res)
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, XLSXHeaders, rows[0])
	assert.Equal(t, []string{"1.01", "Replace Filter", "2 technicians", "", "30 minutes", "", "", "swap cartridge"}, rows[1])
	// trailing empty cells are not reported
	assert.Equal(t, []string{"1.02", "Check Belt"}, rows[2])
}

func TestWriteXLSX_Empty(t *testing.T) {
	for _, res := range []*domain.ExtractionResult{nil, domain.NewExtractionResult()} {
		data, err := WriteXLSX(res)
		require.NoError(t, err)

		rows := readRows(t, data)
		require.Len(t, rows, 1)
		assert.Equal(t, XLSXHeaders, rows[0])
	}
}

func TestWriteXLSX_LongValuesAreTruncated(t *testing.T) {
	res := domain.NewExtractionResult()
	res.Tasks = append(res.Tasks, domain.TaskRecord{
		Number:  "1.01",
		Title:   strings.Repeat("a", MaxCellChars+5000),
		Details: domain.TaskDetails{Summary: strings.Repeat("é", MaxCellChars+1)},
	})

	data, err := WriteXLSX(res)
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, "1.01", rows[1][0])
	assert.Len(t, []rune(rows[1][1]), MaxCellChars)
	assert.Len(t, []rune(rows[1][7]), MaxCellChars)
}

func TestTruncateCell(t *testing.T) {
	assert.Equal(t, "short", truncateCell("short"))

	exact := strings.Repeat("x", MaxCellChars)
	assert.Equal(t, exact, truncateCell(exact))

	// characters outside the BMP count twice
	emoji := strings.Repeat("\U0001F527", MaxCellChars)
	assert.Len(t, []rune(truncateCell(emoji)), MaxCellChars/2)
}
