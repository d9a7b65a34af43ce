package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/eringen/staticpub"
	"github.com/eringen/staticpub/views"
)

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Generate the static site into the output directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "drafts",
				Usage: "Include posts marked draft: true",
			},
			&cli.BoolFlag{
				Name:  "skip-invalid",
				Usage: "Skip malformed posts instead of failing the build",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := staticpub.LoadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			if cmd.Bool("drafts") {
				cfg.IncludeDrafts = true
			}
			if cmd.Bool("skip-invalid") {
				cfg.SkipInvalid = true
			}
			app := staticpub.New(cfg, views.New(cfg), staticpub.WithLogger(log.Default()))
			defer app.Close()
			return app.Build(ctx)
		},
	}
}
