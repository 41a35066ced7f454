package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/docsect/internal/docstring"
	"github.com/g5becks/docsect/internal/manifest"
	"github.com/g5becks/docsect/internal/render"
	"github.com/g5becks/docsect/internal/ui"
)

const (
	formatJSON     = "json"
	formatCSV      = "csv"
	formatMarkdown = "md"
	formatHTML     = "html"
)

func parserFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "dialect",
			Usage: "Docstring dialect",
			Value: docstring.DefaultDialect,
		},
		&cli.BoolFlag{
			Name:  "no-admonitions",
			Usage: "Leave 'Note:' style blocks as plain markdown",
		},
	}
}

func parserFromFlags(cmd *cli.Command) (*docstring.Parser, error) {
	dialect, err := docstring.NewDialect(cmd.String("dialect"))
	if err != nil {
		return nil, err
	}

	return docstring.NewParser(dialect, !cmd.Bool("no-admonitions")), nil
}

func newInspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Parse every docstring in a Python file",
		ArgsUsage: "<file.py>",
		Flags: append(parserFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
			&cli.IntFlag{
				Name:  "desc-length",
				Usage: "Max table text length (0 = unlimited)",
				Value: defaultDescLength,
			},
		),
		Action: inspectAction,
	}
}

func inspectAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: docsect inspect <file.py>").
			Errorf("expected 1 argument, got %d", cmd.Args().Len())
	}

	parser, err := parserFromFlags(cmd)
	if err != nil {
		return err
	}

	info, err := manifest.InspectFile(ctx, parser, cmd.Args().First())
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return ui.WriteJSON(stdout(cmd), info.Symbols)
	}

	out := stdout(cmd)
	printer := ui.NewPrinterWithWriter(stderr(cmd), false)
	bold := color.New(color.Bold)

	for i := range info.Symbols {
		sym := &info.Symbols[i]
		name := manifest.QualifiedName(info.Module, sym)

		_, _ = bold.Fprintf(out, "%s", name)
		_, _ = fmt.Fprintf(out, " (%s, line %d)\n", sym.Kind, sym.Line)

		if len(sym.Sections) > 0 {
			ui.RenderSections(out, sym.Sections, cmd.Int("desc-length"))
		}
		printer.Diagnostics(name, sym.Line, sym.Errors)
	}

	return nil
}

func newRenderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render one symbol's docstring as Markdown or HTML",
		ArgsUsage: "<file.py> <symbol>",
		Flags: append(parserFlags(),
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: md, html",
				Value: formatMarkdown,
			},
		),
		Action: renderAction,
	}
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	const requiredArgs = 2
	if cmd.Args().Len() != requiredArgs {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: docsect render <file.py> <symbol>").
			Errorf("expected %d arguments, got %d", requiredArgs, cmd.Args().Len())
	}

	format := cmd.String("format")
	if format != formatMarkdown && format != formatHTML {
		return oops.
			Code("INVALID_ARGS").
			With("format", format).
			Hint("Use --format md or --format html").
			Errorf("unsupported render format %q", format)
	}

	parser, err := parserFromFlags(cmd)
	if err != nil {
		return err
	}

	path, symbolName := cmd.Args().Get(0), cmd.Args().Get(1)
	info, err := manifest.InspectFile(ctx, parser, path)
	if err != nil {
		return err
	}

	sym, ok := info.Symbol(symbolName)
	if !ok {
		return oops.
			Code("SYMBOL_NOT_FOUND").
			With("path", path).
			With("symbol", symbolName).
			Hint("Run 'docsect inspect "+path+"' to list symbols").
			Errorf("symbol %q not found in %q", symbolName, path)
	}

	md := render.Markdown(manifest.QualifiedName(info.Module, sym), sym.Sections)
	if format == formatHTML {
		md = render.HTML(md)
	}

	if _, writeErr := fmt.Fprint(stdout(cmd), md); writeErr != nil {
		return oops.
			Code("RENDER_ERROR").
			Wrapf(writeErr, "writing rendered output")
	}

	return nil
}
