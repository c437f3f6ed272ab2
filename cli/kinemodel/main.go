// Package main is the kinemodel command itself.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"go.viam.com/kinemodel/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
