package tokenizer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

func tokenizeCSV(ctx context.Context, r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{Headers: []string{}, Rows: []map[string]string{}}, nil
	}
	if err != nil {
		return Table{}, fmt.Errorf("%w: header: %w", ErrUnreadable, err)
	}
	b := newBuilder(header)

	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Table{}, fmt.Errorf("tokenize csv: %w", err)
			}
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				b.warn("row %d: %v", pe.StartLine, pe.Err)
				continue
			}
			return Table{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
		}
		line, _ := cr.FieldPos(0)
		b.add(line, record, true)
	}

	if b.table.Rows == nil {
		b.table.Rows = []map[string]string{}
	}
	return b.table, nil
}
