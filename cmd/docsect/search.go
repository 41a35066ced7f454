package main

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/docsect/internal/manifest"
	"github.com/g5becks/docsect/internal/search"
	"github.com/g5becks/docsect/internal/ui"
)

const defaultSearchLimit = 20

func newSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search symbols or docstring text in the manifest",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "source",
				Usage: "Search only within one source",
			},
			&cli.BoolFlag{
				Name:  "content",
				Usage: "Search docstring text instead of symbol metadata",
			},
			&cli.BoolFlag{
				Name:  "regex",
				Usage: "Treat query as regex (requires --content)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: table, json, csv",
				Value: "table",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Max results (0 = unlimited)",
				Value: defaultSearchLimit,
			},
			&cli.IntFlag{
				Name:  "desc-length",
				Usage: "Max table text length (0 = unlimited)",
				Value: defaultDescLength,
			},
		},
		Action: searchAction,
	}
}

func searchAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: docsect search <query>").
			Errorf("expected 1 argument, got %d", cmd.Args().Len())
	}

	query := strings.TrimSpace(cmd.Args().First())
	if query == "" {
		return oops.
			Code("INVALID_ARGS").
			Hint("Provide a non-empty search query").
			Errorf("search query cannot be empty")
	}

	if cmd.Bool("regex") && !cmd.Bool("content") {
		return oops.
			Code("INVALID_ARGS").
			Hint("--regex requires --content flag").
			Errorf("--regex can only be used with --content")
	}

	m, err := loadManifest(cmd)
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if cmd.Bool("json") {
		format = formatJSON
	}

	if cmd.Bool("content") {
		return runContentSearch(m, cmd, query, format)
	}

	return runSymbolSearch(m, cmd, query, format)
}

func runSymbolSearch(m *manifest.Manifest, cmd *cli.Command, query, format string) error {
	results, err := search.Symbols(m, search.Options{
		Query:  query,
		Source: cmd.String("source"),
		Limit:  cmd.Int("limit"),
	})
	if err != nil {
		return err
	}

	w := stdout(cmd)
	switch format {
	case formatJSON:
		return ui.WriteJSON(w, results)
	case formatCSV:
		return outputSymbolsCSV(w, results)
	default:
		outputSymbolsTable(w, results, cmd.Int("desc-length"))
		return nil
	}
}

func runContentSearch(m *manifest.Manifest, cmd *cli.Command, query, format string) error {
	results, err := search.Content(m, search.ContentOptions{
		Query:    query,
		Source:   cmd.String("source"),
		UseRegex: cmd.Bool("regex"),
		Limit:    cmd.Int("limit"),
	})
	if err != nil {
		return err
	}

	w := stdout(cmd)
	switch format {
	case formatJSON:
		return ui.WriteJSON(w, results)
	case formatCSV:
		return outputContentCSV(w, results)
	default:
		outputContentTable(w, results, cmd.Int("desc-length"))
		return nil
	}
}

func outputSymbolsCSV(out io.Writer, results []search.Result) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{"source", "path", "symbol", "kind", "line", "match_field", "match_value", "score", "summary"}
	if err := w.Write(header); err != nil {
		return oops.Code("CSV_ERROR").Wrapf(err, "writing CSV header")
	}

	for _, r := range results {
		if err := w.Write([]string{
			r.Source,
			r.Path,
			r.Symbol,
			r.Kind,
			strconv.Itoa(r.Line),
			r.MatchField,
			r.MatchValue,
			strconv.Itoa(r.Score),
			r.Summary,
		}); err != nil {
			return oops.Code("CSV_ERROR").Wrapf(err, "writing CSV row")
		}
	}

	return nil
}

func outputSymbolsTable(out io.Writer, results []search.Result, descLength int) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"SOURCE", "SYMBOL", "LOCATION", "MATCH FIELD", "SCORE", "SUMMARY"})

	for _, r := range results {
		t.AppendRow(table.Row{
			r.Source,
			r.Symbol,
			ui.RenderLocation(r.Path, r.Line),
			r.MatchField,
			r.Score,
			ui.Truncate(r.Summary, descLength),
		})
	}

	t.Render()
}

func outputContentCSV(out io.Writer, results []search.ContentResult) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"source", "path", "symbol", "line", "section", "text"}); err != nil {
		return oops.Code("CSV_ERROR").Wrapf(err, "writing CSV header")
	}

	for _, r := range results {
		if err := w.Write([]string{
			r.Source,
			r.Path,
			r.Symbol,
			strconv.Itoa(r.Line),
			string(r.Section),
			r.Text,
		}); err != nil {
			return oops.Code("CSV_ERROR").Wrapf(err, "writing CSV row")
		}
	}

	return nil
}

func outputContentTable(out io.Writer, results []search.ContentResult, descLength int) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"SOURCE", "SYMBOL", "LOCATION", "SECTION", "TEXT"})

	for _, r := range results {
		t.AppendRow(table.Row{
			r.Source,
			r.Symbol,
			ui.RenderLocation(r.Path, r.Line),
			r.Section,
			ui.Truncate(r.Text, descLength),
		})
	}

	t.Render()
}
