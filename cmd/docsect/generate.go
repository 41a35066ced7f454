package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/g5becks/docsect/internal/config"
	"github.com/g5becks/docsect/internal/manifest"
	"github.com/g5becks/docsect/internal/ui"
)

func newGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Parse configured sources into the manifest",
		ArgsUsage: "[source-name...]",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Report files without diagnostics too",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Show progress bars instead of per-file lines",
			},
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "Maximum files parsed at once (0 = use config)",
			},
		},
		Action: generateAction,
	}
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if cmd.IsSet("parallel") && cmd.Int("parallel") > 0 {
		cfg.Parallel = cmd.Int("parallel")
	}

	printer := ui.NewPrinterWithWriter(stderr(cmd), cmd.Bool("verbose"))
	opts := manifest.Options{
		SourceNames: cmd.Args().Slice(),
		OnEvent:     printer.HandleEvent,
	}

	if cmd.Bool("progress") {
		bars := ui.NewProgressPrinter(stderr(cmd))
		opts.OnEvent = bars.HandleEvent
		summary, genErr := manifest.Generate(ctx, cfg, opts)
		bars.Stop()
		if genErr != nil {
			return genErr
		}
		printer.PrintSummary(summary)
		return nil
	}

	summary, err := manifest.Generate(ctx, cfg, opts)
	if err != nil {
		return err
	}

	printer.PrintSummary(summary)
	return nil
}
