package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/vatly/vatly/internal/quiz"
)

// XLSXMIMEType is the content type of an Office Open XML spreadsheet.
const XLSXMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const answerSheet = "Sheet1"

var answerHeader = []any{"Câu", "Hình thức", "Đáp án"}

// AnswerKey renders the answers of result as a one-sheet workbook with a
// row per question. A nil result exports nothing and returns (nil, nil).
func (e *Exporter) AnswerKey(result *quiz.Result) (*Document, error) {
	if result == nil {
		return nil, nil
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(answerSheet, "A1", &answerHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, q := range result.Questions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{i + 1, string(q.Type), norm.NFC.String(q.CorrectAnswer)}
		if err := f.SetSheetRow(answerSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(answerSheet, "B", "B", 22); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return &Document{
		Filename: fmt.Sprintf("Dap_An_%d.xlsx", e.stamp()),
		MIMEType: XLSXMIMEType,
		Data:     buf.Bytes(),
	}, nil
}

// AnswerKey renders result with the package default Exporter.
func AnswerKey(result *quiz.Result) (*Document, error) {
	return defaultExporter.AnswerKey(result)
}
