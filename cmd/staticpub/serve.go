package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/eringen/staticpub"
	"github.com/eringen/staticpub/views"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Preview the site locally, rendering pages from the content tree",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
			},
			&cli.BoolFlag{
				Name:  "drafts",
				Usage: "Include posts marked draft: true",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := staticpub.LoadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			if addr := cmd.String("addr"); addr != "" {
				cfg.Addr = addr
			}
			if cmd.Bool("drafts") {
				cfg.IncludeDrafts = true
			}
			app := staticpub.New(cfg, views.New(cfg), staticpub.WithLogger(log.Default()))
			defer app.Close()
			return app.Serve()
		},
	}
}
