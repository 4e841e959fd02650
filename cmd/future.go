package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
)

// forecast holds the flags shared by future and overview.
type forecast struct {
	output
	until   string
	balance bool
	summary bool
}

func (c *forecast) SetFlags(f *flag.FlagSet) {
	c.output.SetFlags(f)
	f.StringVar(&c.until, "u", "+1m", "Expand plans until this date")
	f.BoolVar(&c.balance, "balance", false, "Add a running balance column")
	f.BoolVar(&c.summary, "summary", false, "Print a summary after the table")
}

// run opens the book and prints the view built by fn.
func (c *forecast) run(ctx context.Context, f *flag.FlagSet, fn func(*fintrack.Book, time.Time) *fintrack.Combined) subcommands.ExitStatus {
	if f.NArg() > 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	until, err := fintrack.ParseDatetime(c.until)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing until date: %v\n", err)
		return subcommands.ExitUsageError
	}
	book, err := OpenBook(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return c.show(fn(book, until), c.balance, c.summary)
}

// --- Future Command ---

type futureCmd struct{ forecast }

func (*futureCmd) Name() string     { return "future" }
func (*futureCmd) Synopsis() string { return "list the records planned from now on" }
func (*futureCmd) Usage() string {
	return `fintrack future [-u <until>] [-balance] [-summary] [-format grid|markdown]

  Expands every plans sheet from now until -u, a month ahead by default.
`
}

func (c *futureCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, f, (*fintrack.Book).Future)
}

// --- Overview Command ---

type overviewCmd struct{ forecast }

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "list the records followed by the planned ones" }
func (*overviewCmd) Usage() string {
	return `fintrack overview [-u <until>] [-balance] [-summary] [-format grid|markdown]

  Lists the records sheet followed by every plans sheet expanded from now
  until -u, a month ahead by default. With -balance, the last row is the
  balance to expect.
`
}

func (c *overviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(ctx, f, (*fintrack.Book).Overview)
}
