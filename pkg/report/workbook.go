package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/getzep/nerlog/pkg/models"
)

const (
	HistorySheet  = "History"
	EntitiesSheet = "Entities"
	// WorkbookFilename is the attachment name of history exports.
	WorkbookFilename = "ner_history.xlsx"
)

var (
	historyHeaders  = []string{"Index", "Source", "Filename", "Created At", "Words", "Entities", "Input"}
	entitiesHeaders = []string{"Index", "Text", "Label"}
)

// Workbook exports a session history as XLSX. Index columns are 1-based and line up between
// the two sheets.
func Workbook(ixs []models.Interaction) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	if _, err := f.NewSheet(EntitiesSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	f.SetActiveSheet(0)

	writeRow(f, HistorySheet, 1, toAny(historyHeaders)...)
	writeRow(f, EntitiesSheet, 1, toAny(entitiesHeaders)...)

	entityRow := 2
	for i, ix := range ixs {
		writeRow(f, HistorySheet, i+2,
			i+1,
			string(ix.Source),
			ix.Filename,
			ix.CreatedAt.UTC().Format(time.RFC3339),
			ix.WordCount,
			len(ix.Entities),
			ix.InputText,
		)
		for _, e := range ix.Entities {
			writeRow(f, EntitiesSheet, entityRow, i+1, e.Text, e.Label)
			entityRow++
		}
	}

	_ = f.SetColWidth(HistorySheet, "B", "B", 10)
	_ = f.SetColWidth(HistorySheet, "C", "C", 28)
	_ = f.SetColWidth(HistorySheet, "D", "D", 22)
	_ = f.SetColWidth(HistorySheet, "G", "G", 80)
	_ = f.SetColWidth(EntitiesSheet, "B", "B", 36)
	_ = f.SetColWidth(EntitiesSheet, "C", "C", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
