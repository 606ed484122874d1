package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/basket/date"
	"github.com/google/subcommands"
)

type createCmd struct {
	created string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new empty basket" }
func (*createCmd) Usage() string {
	return `create [-d <date>] <name>

  Creates a new empty basket under the given name. The creation date must
  be a business day; it defaults to a fixed placeholder date.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.created, "d", "", "creation date (YYYY-MM-DD), business day")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "create takes exactly one basket name")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	reg, err := OpenRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.created == "" {
		err = reg.CreateBasket(name)
	} else {
		var on date.Date
		on, err = date.Parse(c.created)
		if err == nil {
			err = reg.CreateBasketOn(name, on)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating basket %q: %v\n", name, err)
		return subcommands.ExitFailure
	}

	if err := SaveRegistry(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created basket %q\n", name)
	return subcommands.ExitSuccess
}
