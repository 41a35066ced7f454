package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/g5becks/docsect/internal/config"
)

func newInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a starter docsect.toml in the current directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: initAction,
	}
}

func initAction(_ context.Context, cmd *cli.Command) error {
	const path = "docsect.toml"

	if err := config.WriteStarter(path, cmd.Bool("force")); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stdout(cmd), "wrote %s\n", path)
	return nil
}
