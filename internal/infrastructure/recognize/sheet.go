package recognize

import (
	"bytes"
	"context"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

// SheetEngine flattens every worksheet of an Excel workbook into plain
// text, one row per line with cells separated by single spaces.
type SheetEngine struct{}

func (SheetEngine) ExtractText(_ context.Context, _ string, data []byte) (string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", domain.WrapError(domain.ErrRecognitionFailed, "open workbook", err)
	}
	defer book.Close()

	var sb strings.Builder
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return "", domain.WrapError(domain.ErrRecognitionFailed, "read worksheet", err)
		}
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " "))
			if line == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
