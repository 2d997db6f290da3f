package ingest

import (
	"bytes"
	"fmt"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads the first sheet of an xlsx payload into one
// map-per-row keyed by the header row, headers exactly as the file
// spells them. Any failure to get tabular data out of the bytes is an
// ErrUnreadableWorkbook: no partial import is attempted.
func ReadWorkbook(data []byte) ([]map[string]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", presence.ErrUnreadableWorkbook, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", presence.ErrUnreadableWorkbook)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: read rows from sheet %s: %v", presence.ErrUnreadableWorkbook, sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", presence.ErrUnreadableWorkbook, sheetName)
	}

	headers := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		values := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				values[header] = row[i]
			} else {
				values[header] = ""
			}
		}
		records = append(records, values)
	}

	return records, nil
}
