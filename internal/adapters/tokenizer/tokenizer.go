// Package tokenizer splits an uploaded slate into a header row and header-keyed data rows.
//
// CSV is read leniently: quotes may be bare, rows may be short or long, and blank
// lines are skipped. XLSX workbooks are read from their first sheet. Problems that
// leave the rest of the file usable become warnings; only input that cannot be
// read at all is an error.
package tokenizer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format identifies the container of an uploaded slate.
type Format string

// Supported formats.
const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

const (
	bom           = "\ufeff"
	ctxCheckEvery = 256 // rows between cancellation checks
)

// Table is a tokenized slate.
type Table struct {
	Headers  []string
	Rows     []map[string]string
	Warnings []string
}

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case CSV:
		return CSV, nil
	case XLSX:
		return XLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromFilename picks a format from the file extension. Names without an
// extension are treated as CSV.
func FormatFromFilename(name string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case "", ".csv", ".txt":
		return CSV, nil
	case ".xlsx":
		return XLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Tokenize reads r in the given format.
func Tokenize(ctx context.Context, format Format, r io.Reader) (Table, error) {
	switch format {
	case CSV:
		return tokenizeCSV(ctx, r)
	case XLSX:
		return tokenizeXLSX(ctx, r)
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// builder accumulates rows against a fixed header.
type builder struct {
	table Table
	// index of the column each header key is read from; -1 for skipped columns
	cols []int
}

func newBuilder(raw []string) *builder {
	b := &builder{}
	seen := make(map[string]bool, len(raw))
	b.cols = make([]int, len(raw))
	for i, h := range raw {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		h = strings.TrimSpace(h)
		b.table.Headers = append(b.table.Headers, h)
		switch {
		case h == "":
			b.cols[i] = -1
		case seen[h]:
			b.cols[i] = -1
			b.warn("duplicate header %q in column %d; keeping the first", h, i+1)
		default:
			seen[h] = true
			b.cols[i] = i
		}
	}
	return b
}

func (b *builder) warn(format string, args ...any) {
	b.table.Warnings = append(b.table.Warnings, fmt.Sprintf(format, args...))
}

// add maps one record onto the header. line is 1-based and only used in warnings.
func (b *builder) add(line int, record []string, warnShort bool) {
	if blank(record) {
		return
	}
	switch {
	case len(record) > len(b.cols):
		b.warn("row %d: too many fields: expected %d fields but parsed %d", line, len(b.cols), len(record))
	case len(record) < len(b.cols) && warnShort:
		b.warn("row %d: too few fields: expected %d fields but parsed %d", line, len(b.cols), len(record))
	}
	row := make(map[string]string, len(b.cols))
	for i, col := range b.cols {
		if col < 0 || col >= len(record) {
			continue
		}
		row[b.table.Headers[i]] = record[col]
	}
	b.table.Rows = append(b.table.Rows, row)
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
