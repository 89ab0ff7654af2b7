// Package main runs the pricer: a command line front end to the derivative
// pricing catalog.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", "", "Path to a config file (yaml, toml or json); DERIVATIVES_* environment variables override it")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&listCmd{}, "models")
	commander.Register(&priceCmd{}, "models")
	commander.Register(&estimateCmd{}, "models")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
