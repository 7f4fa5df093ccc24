package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/okian/dfsviz/internal/adapters/tokenizer"
	"github.com/okian/dfsviz/internal/sampledata"
	"github.com/okian/dfsviz/pkg/logger"
)

// File permission constants.
const (
	sampleFilePermission = 0o600
)

var (
	sampleCfg    = sampledata.DefaultConfig()
	sampleStyle  string
	sampleFormat string
	sampleOut    string
	samplePost   bool
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a synthetic slate",
	Long: `Generate a deterministic synthetic slate and write it as CSV or XLSX.
With --post the slate is uploaded to a running server and the stored
collections are checked against the generated rows.`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

func init() {
	f := sampleCmd.Flags()
	f.IntVarP(&sampleCfg.Players, "players", "n", sampleCfg.Players, "Number of player rows")
	f.Uint64Var(&sampleCfg.Seed, "seed", sampleCfg.Seed, "Generator seed")
	f.StringVar(&sampleStyle, "style", string(sampleCfg.Style), "Header style: dk or export")
	f.Float64Var(&sampleCfg.MissingRate, "missing", sampleCfg.MissingRate, "Share of numeric cells left blank")
	f.StringVar(&sampleFormat, "format", string(tokenizer.CSV), "Output format: csv or xlsx")
	f.StringVarP(&sampleOut, "out", "o", "", "Output file (default stdout)")
	f.BoolVar(&samplePost, "post", false, "Upload the slate to --url instead of writing it")
	f.StringVar(&sampleCfg.BaseURL, "url", sampleCfg.BaseURL, "Base URL of the server")
	f.DurationVar(&sampleCfg.Timeout, "timeout", sampleCfg.Timeout, "HTTP request timeout")
}

func runSample(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sampleCfg.Style = sampledata.Style(sampleStyle)

	format, err := tokenizer.ParseFormat(sampleFormat)
	if err != nil {
		return err
	}
	slate, err := sampledata.Generate(ctx, sampleCfg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := writeSlate(&buf, format, slate); err != nil {
		return err
	}

	if samplePost {
		name := "sample." + string(format)
		res, err := sampledata.NewClient(sampleCfg).Upload(ctx, name, &buf)
		if err != nil {
			return err
		}
		if err := sampledata.Verify(slate, res); err != nil {
			return fmt.Errorf("verify upload: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d players to %s\n", len(res.Players), sampleCfg.BaseURL)
		return nil
	}

	if sampleOut == "" {
		_, err := buf.WriteTo(cmd.OutOrStdout())
		return err
	}
	if err := os.WriteFile(filepath.Clean(sampleOut), buf.Bytes(), sampleFilePermission); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}
	logger.Get().Info(ctx, "sample slate written",
		logger.String("file", sampleOut),
		logger.Int("players", len(slate.Rows)),
		logger.String("size", humanize.Bytes(uint64(buf.Len()))),
	)
	return nil
}

func writeSlate(w io.Writer, format tokenizer.Format, s sampledata.Slate) error {
	if format == tokenizer.XLSX {
		return sampledata.WriteXLSX(w, s)
	}
	return sampledata.WriteCSV(w, s)
}
