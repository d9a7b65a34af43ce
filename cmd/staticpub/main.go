package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	root := &cli.Command{
		Name:    "staticpub",
		Usage:   "Generate a static blog from folders of Markdown and assets",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the site config file",
				Value: "staticpub.yaml",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			// A missing .env is fine; env vars may come from the shell.
			_ = godotenv.Load()
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			buildCmd(),
			serveCmd(),
			newCmd(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
