package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	output
	count   string
	start   string
	until   string
	balance bool
	summary bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "list the records of a sheet" }
func (*showCmd) Usage() string {
	return `fintrack show [-n <count>] [-s <start>] [-u <until>] [-balance] [-summary] [-format grid|markdown]

  Lists the records sheet, or the -sheet one. -n, -s and -u keep at most
  count records from start to until, both included. Plans sheets are listed
  as plans unless bounds are given, then their occurrences are listed.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	c.output.SetFlags(f)
	f.StringVar(&c.count, "n", "", "Maximum number of records")
	f.StringVar(&c.start, "s", "", "Start date, included")
	f.StringVar(&c.until, "u", "", "Until date, included")
	f.BoolVar(&c.balance, "balance", false, "Add a running balance column")
	f.BoolVar(&c.summary, "summary", false, "Print a summary after the table")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	bounds, err := parseBounds(c.count, c.start, c.until)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing bounds: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := OpenBook(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	name := sheetName(fintrack.DefaultRecords)
	sheet, err := book.Sheet(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var view fintrack.Collection = sheet
	if !bounds.IsZero() || (c.balance || c.summary) && sheet.KindName() != fintrack.RecordKind.Name {
		view = fintrack.NewExtract(sheet, bounds)
	}
	return c.show(view, c.balance, c.summary)
}

// show prints view, with a balance column and a summary if asked.
func (o *output) show(view fintrack.Collection, balance, summary bool) subcommands.ExitStatus {
	var table renderer.Table = view
	if balance {
		balanced, err := fintrack.NewBalanced(view)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		table = balanced
	}
	if err := o.print(table); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if summary {
		// Nothing to sum up below an empty table.
		renderer.ConditionalBlock(stdout, func(w io.Writer) bool {
			s := renderer.Summarize(view)
			writeMarkdown(w, renderer.RenderSummary(s, o.options()))
			return s.Count > 0
		})
	}
	return subcommands.ExitSuccess
}

func parseBounds(count, start, until string) (fintrack.Bounds, error) {
	n := 0
	if count != "" {
		var err error
		if n, err = strconv.Atoi(count); err != nil || n < 0 {
			return fintrack.Bounds{}, fmt.Errorf("%w: invalid count %q", fintrack.ErrValue, count)
		}
	}
	return fintrack.ParseBounds(n, start, until)
}
