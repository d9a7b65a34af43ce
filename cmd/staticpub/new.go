package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/eringen/staticpub/scaffold"
)

func newCmd() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a new staticpub site skeleton",
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("usage: staticpub new <name>")
			}
			dir := filepath.Clean(name)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			if err := scaffold.Generate(dir, filepath.Base(dir)); err != nil {
				return err
			}
			fmt.Printf("Created %s. Next steps:\n\n  cd %s\n  staticpub serve\n", dir, dir)
			return nil
		},
	}
}
