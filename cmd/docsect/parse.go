package main

import (
	"context"
	"io"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/docsect/internal/config"
	"github.com/g5becks/docsect/internal/docstring"
	"github.com/g5becks/docsect/internal/ui"
)

func newParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse docstring text from a file or stdin",
		ArgsUsage: "[file|-]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "signature",
				Usage: "TOML file describing the function signature",
			},
			&cli.StringFlag{
				Name:  "return-type",
				Usage: "Return annotation used when the docstring names none",
			},
			&cli.StringFlag{
				Name:  "dialect",
				Usage: "Docstring dialect",
				Value: docstring.DefaultDialect,
			},
			&cli.BoolFlag{
				Name:  "no-admonitions",
				Usage: "Leave 'Note:' style blocks as plain markdown",
			},
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "Normalize indentation like inspect.cleandoc before parsing",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
			&cli.IntFlag{
				Name:  "desc-length",
				Usage: "Max table text length (0 = unlimited)",
				Value: defaultDescLength,
			},
		},
		Action: parseAction,
	}
}

func parseAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: docsect parse [file|-]").
			Errorf("expected at most 1 argument, got %d", cmd.Args().Len())
	}

	text, err := readDocstring(cmd, cmd.Args().First())
	if err != nil {
		return err
	}

	if cmd.Bool("clean") {
		text = docstring.CleanDoc(text)
	}

	dialect, err := docstring.NewDialect(cmd.String("dialect"))
	if err != nil {
		return err
	}

	in := docstring.Input{Text: text, ReturnType: cmd.String("return-type")}
	if path := cmd.String("signature"); path != "" {
		sig, sigErr := config.LoadSignature(path)
		if sigErr != nil {
			return sigErr
		}
		in.Signature = sig
	}

	result := docstring.NewParser(dialect, !cmd.Bool("no-admonitions")).Parse(in)

	if cmd.Bool("json") {
		return ui.WriteJSON(stdout(cmd), result)
	}

	ui.RenderSections(stdout(cmd), result.Sections, cmd.Int("desc-length"))
	ui.NewPrinterWithWriter(stderr(cmd), false).Diagnostics("docstring", 0, result.Errors)
	return nil
}

func readDocstring(cmd *cli.Command, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin(cmd))
		if err != nil {
			return "", oops.
				Code("SOURCE_READ_ERROR").
				Wrapf(err, "reading docstring from stdin")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", oops.
			Code("SOURCE_READ_ERROR").
			With("path", path).
			Wrapf(err, "reading docstring file")
	}

	return string(data), nil
}
