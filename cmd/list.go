package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list baskets and their holdings" }
func (*listCmd) Usage() string {
	return `list

  Lists all baskets with their creation date and holdings.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, err := OpenRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, name := range reg.Baskets() {
		b, _ := reg.Get(name)
		fmt.Printf("%s (created %s)\n", name, b.Created())
		for _, h := range b.Holdings() {
			fmt.Printf("  %-8s %6d  %s\n", h.Instrument.Symbol(), h.Shares, h.Instrument.Name())
		}
	}
	return subcommands.ExitSuccess
}
