package main

import (
	"os"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:                   "cfront",
		Usage:                  "Parse a small C subset and print its syntax tree",
		ArgsUsage:              "<file> [<file> ...]",
		UseShortOptionHandling: true,
		HideHelpCommand:        true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   "Print every top-level statement instead of only the first",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: sexpr or text",
			},
			&cli.StringFlag{
				Name:  "separator",
				Usage: "Inserted between input files: none or newline",
			},
			&cli.BoolFlag{
				Name:    "tokens",
				Aliases: []string{"t"},
				Usage:   "Dump the token stream and stop",
			},
			&cli.BoolFlag{
				Name:  "types",
				Usage: "Dump user-defined types after parsing",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "The path to the config file (default: .cfront.yaml if present)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show progress on stderr",
			},
		},
		Action: run,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
