package tokenizer

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// tokenizeXLSX reads the first sheet. Trailing empty cells are trimmed by the
// workbook reader, so short rows are expected and not warned about.
func tokenizeXLSX(ctx context.Context, r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("%w: workbook has no sheets", ErrUnreadable)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("%w: sheet %q: %w", ErrUnreadable, sheets[0], err)
	}

	// the header is the first row with any content
	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return Table{Headers: []string{}, Rows: []map[string]string{}}, nil
	}

	b := newBuilder(rows[start])
	for i := start + 1; i < len(rows); i++ {
		if (i-start)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Table{}, fmt.Errorf("tokenize xlsx: %w", err)
			}
		}
		b.add(i+1, rows[i], false)
	}

	if b.table.Rows == nil {
		b.table.Rows = []map[string]string{}
	}
	return b.table, nil
}
