package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
)

type slurpCmd struct {
	file string
}

func (*slurpCmd) Name() string     { return "slurp" }
func (*slurpCmd) Synopsis() string { return "add many records from tab separated lines" }
func (*slurpCmd) Usage() string {
	return `fintrack slurp [-f <file>]

  Reads lines of tab separated amount, description, and optional timestamp
  and uid, up to the first blank line, into the records sheet or the -sheet
  one. Lines are read from the standard input unless -f is given.
`
}

func (c *slurpCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "File to read instead of the standard input")
}

func (c *slurpCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	var r io.Reader = os.Stdin
	if c.file != "" {
		file, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.file, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	book, err := OpenBook(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	name := sheetName(fintrack.DefaultRecords)
	n, err := book.Slurp(name, r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error after %d entries, nothing saved: %v\n", n, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Slurped %d entries into %s\n", n, name)
	return subcommands.ExitSuccess
}
