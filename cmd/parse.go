package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/dfsviz/internal/adapters/tokenizer"
	"github.com/okian/dfsviz/internal/domain/filter"
	"github.com/okian/dfsviz/internal/domain/ingest"
	"github.com/okian/dfsviz/internal/domain/model"
	"github.com/okian/dfsviz/pkg/logger"
)

var (
	parseJSON     bool
	parsePosition string
	parseSort     string
	parseLimit    int
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a slate file and print the players",
	Long: `Parse a CSV or XLSX slate the same way an upload would and print the
per-position counts, row warnings and the top players. With --json the full
parse result is written instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Write the parse result as JSON")
	parseCmd.Flags().StringVarP(&parsePosition, "position", "p", string(model.All), "Collection to list")
	parseCmd.Flags().StringVarP(&parseSort, "sort", "s", "dk_projection", "Column to sort by, descending")
	parseCmd.Flags().IntVarP(&parseLimit, "limit", "n", 15, "Players to list")
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	res, size, err := parseFile(ctx, path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if parseJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if !res.Success {
		return fmt.Errorf("parse %s: %s", path, strings.Join(res.Errors, "; "))
	}
	return printSlate(out, path, size, res)
}

// parseFile tokenizes and normalizes path. Structural failures come back as a
// failed Result; only I/O problems are errors.
func parseFile(ctx context.Context, path string) (ingest.Result, int64, error) {
	format, err := tokenizer.FormatFromFilename(path)
	if err != nil {
		return ingest.Failed(err), 0, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return ingest.Result{}, 0, fmt.Errorf("open slate: %w", err)
	}
	defer f.Close()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	table, err := tokenizer.Tokenize(ctx, format, f)
	if err != nil {
		return ingest.Failed(err), size, nil
	}
	players := newNormalizer(ctx, cfg, logger.Get()).Normalize(ctx, table.Rows)
	return ingest.Succeeded(players, table.Warnings), size, nil
}

func printSlate(w io.Writer, path string, size int64, res ingest.Result) error {
	pos := model.Position(strings.ToUpper(parsePosition))
	if pos != model.All && !pos.Known() {
		return fmt.Errorf("unknown position %q", parsePosition)
	}
	page, err := filter.Table(res.Collections[pos], filter.TableQuery{
		SortKey:  parseSort,
		SortDir:  filter.Desc,
		PageSize: max(parseLimit, 1),
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, renderSummary(path, size, res))
	_, _ = fmt.Fprintln(w, renderPlayers(page.Rows))
	return nil
}
