package main

import (
	"context"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/docsect/internal/config"
	"github.com/g5becks/docsect/internal/manifest"
	"github.com/g5becks/docsect/internal/ui"
)

func newSymbolsCommand() *cli.Command {
	return &cli.Command{
		Name:      "symbols",
		Usage:     "List the symbols of a generated source",
		ArgsUsage: "<source>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
			&cli.BoolFlag{
				Name:  "diagnostics",
				Usage: "Only list symbols with parse diagnostics",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Limit number of results (0 = all)",
			},
			&cli.IntFlag{
				Name:  "desc-length",
				Usage: "Max table text length (0 = unlimited)",
				Value: defaultDescLength,
			},
		},
		Action: symbolsAction,
	}
}

func symbolsAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: docsect symbols <source>").
			Errorf("expected 1 argument, got %d", cmd.Args().Len())
	}

	m, err := loadManifest(cmd)
	if err != nil {
		return err
	}

	rows, err := symbolRows(m, cmd.Args().First(), cmd.Bool("diagnostics"))
	if err != nil {
		return err
	}

	if limit := cmd.Int("limit"); limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	if cmd.Bool("json") {
		return ui.WriteJSON(stdout(cmd), rows)
	}

	ui.RenderSymbols(stdout(cmd), rows, cmd.Int("desc-length"))
	return nil
}

func loadManifest(cmd *cli.Command) (*manifest.Manifest, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	return manifest.Load(cfg.Output)
}

func symbolRows(m *manifest.Manifest, sourceName string, onlyDiagnostics bool) ([]ui.SymbolRow, error) {
	src, ok := m.Sources[sourceName]
	if !ok {
		return nil, oops.
			Code("SOURCE_NOT_FOUND").
			With("source", sourceName).
			Hint("Run 'docsect generate' to parse configured sources").
			Errorf("source %q not found in manifest", sourceName)
	}

	var rows []ui.SymbolRow
	for _, file := range src.Files {
		for i := range file.Symbols {
			sym := &file.Symbols[i]
			if onlyDiagnostics && len(sym.Errors) == 0 {
				continue
			}
			rows = append(rows, ui.SymbolRow{
				Symbol:      manifest.QualifiedName(file.Module, sym),
				Kind:        string(sym.Kind),
				Path:        file.Path,
				Line:        sym.Line,
				Summary:     sym.Summary(),
				Diagnostics: len(sym.Errors),
			})
		}
	}

	return rows, nil
}
