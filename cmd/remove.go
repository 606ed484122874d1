package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type removeCmd struct {
	symbol string
}

func (*removeCmd) Name() string     { return "rm" }
func (*removeCmd) Synopsis() string { return "remove a basket, or an instrument from a basket" }
func (*removeCmd) Usage() string {
	return `rm [-s <symbol>] <name>

  Removes the named basket. With -s, only drops the holding of the given
  symbol from it. Removing an absent basket or holding is not an error.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "instrument to drop from the basket instead of removing the basket")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "rm takes exactly one basket name")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	reg, err := OpenRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.symbol == "" {
		reg.RemoveBasket(name)
	} else if b, ok := reg.Get(name); ok {
		b.Remove(c.symbol)
	}

	if err := SaveRegistry(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
