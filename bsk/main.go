package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/basket/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .env is optional; flags and the environment still win.
	_ = godotenv.Load()

	verbose := flag.Bool("v", false, "enable debug logging")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	cmd.Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	os.Exit(int(commander.Execute(context.Background())))
}
