package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
)

// --- Add Command ---

type addCmd struct {
	amount      string
	description string
	date        string
	uid         string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a record to a sheet" }
func (*addCmd) Usage() string {
	return `fintrack add -a <amount> -m <description> [-d <date>] [-uid <uid>]

  Adds a record to the records sheet, or to the -sheet one. The date defaults
  to now and the uid to a random one.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount, negative for expenses")
	f.StringVar(&c.description, "m", "", "Description")
	f.StringVar(&c.date, "d", "", "Date and optional time, defaults to now")
	f.StringVar(&c.uid, "uid", "", "Unique identifier, random if empty")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" || c.description == "" || f.NArg() > 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	fields := fintrack.Fields{"amount": c.amount, "description": c.description}
	if c.date != "" {
		fields["timestamp"] = c.date
	}
	if c.uid != "" {
		fields["uid"] = c.uid
	}
	return addEntry(ctx, sheetName(fintrack.DefaultRecords), fields)
}

// --- Plan Command ---

type planCmd struct {
	amount      string
	description string
	schedule    string
	uids        string
	uid         string
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "plan a record on a schedule" }
func (*planCmd) Usage() string {
	return `fintrack plan -a <amount> -m <description> -s <schedule> [-uids <template>] [-uid <uid>]

  Adds a plan to the plans sheet, or to the -sheet one. See "fintrack topic
  schedules" for the schedule syntax and uid templates.
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount of each occurrence")
	f.StringVar(&c.description, "m", "", "Description")
	f.StringVar(&c.schedule, "s", "", `Schedule, like "every other week on friday" or a single date`)
	f.StringVar(&c.uids, "uids", "", `Template of occurrence uids, like "rent {index}"`)
	f.StringVar(&c.uid, "uid", "", "Unique identifier of the plan, random if empty")
}

func (c *planCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" || c.description == "" || c.schedule == "" || f.NArg() > 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	fields := fintrack.Fields{"amount": c.amount, "description": c.description, "schedule": c.schedule}
	if c.uids != "" {
		fields["uid_template"] = c.uids
	}
	if c.uid != "" {
		fields["uid"] = c.uid
	}
	return addEntry(ctx, sheetName(fintrack.DefaultPlans), fields)
}

// addEntry inserts fields in the named sheet of the book and saves it.
func addEntry(ctx context.Context, sheet string, fields fintrack.Fields) subcommands.ExitStatus {
	book, err := OpenBook(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	e, err := book.Add(sheet, fields)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding to %s: %v\n", sheet, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Added %s\n", e)
	return subcommands.ExitSuccess
}
