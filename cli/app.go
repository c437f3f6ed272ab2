// Package cli contains the kinemodel command line interface.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	generalFlagConfig = "config"
	generalFlagDebug  = "debug"
	generalFlagName   = "name"

	inspectFlagTree = "tree"

	solveFlagLeastSquares = "least-squares"
)

var app = &cli.App{
	Name:            "kinemodel",
	Usage:           "build and inspect kinematic robot models",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    generalFlagConfig,
			Aliases: []string{"c"},
			Usage:   "load configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "inspect",
			Usage:     "validate model files and print their joints",
			ArgsUsage: "<file>...",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  inspectFlagTree,
					Usage: "also print the link tree",
				},
				&cli.StringFlag{
					Name:  generalFlagName,
					Usage: "override the model name (single file only)",
				},
			},
			Action: InspectAction,
		},
		{
			Name:      "order",
			Usage:     "print the order mimic joints are evaluated in",
			ArgsUsage: "<file>",
			Action:    OrderAction,
		},
		{
			Name:      "dot",
			Usage:     "print the link graph in Graphviz DOT format",
			ArgsUsage: "<file>",
			Action:    DOTAction,
		},
		{
			Name:   "schema",
			Usage:  "print the JSON schema of model documents",
			Action: SchemaAction,
		},
		{
			Name:      "solve",
			Usage:     "solve the linear system stored in a JSON file",
			ArgsUsage: "<file>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  solveFlagLeastSquares,
					Usage: "solve in the least squares sense with a sparse coefficient matrix",
				},
			},
			Action: SolveAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
