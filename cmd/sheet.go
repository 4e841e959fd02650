package cmd

import (
	"context"
	"flag"
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"
)

// --- Sheet Command ---

type sheetCmd struct {
	output
	kind string
}

func (*sheetCmd) Name() string     { return "sheet" }
func (*sheetCmd) Synopsis() string { return "create a sheet or list them" }
func (*sheetCmd) Usage() string {
	return `fintrack sheet [-kind <kind>] [<name>]

  Without a name, lists the sheets of the book. With a name, creates an empty
  sheet of the given kind if it does not exist yet.
`
}

func (c *sheetCmd) SetFlags(f *flag.FlagSet) {
	c.output.SetFlags(f)
	f.StringVar(&c.kind, "kind", fintrack.RecordKind.Name, "Kind of the new sheet: "+strings.Join(fintrack.KindNames(), ", "))
}

func (c *sheetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	book, err := OpenBook(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if f.NArg() == 0 {
		if err := c.print(sheetsTable{book}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		return subcommands.ExitSuccess
	}

	name := f.Arg(0)
	if _, err := book.Create(name, c.kind); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating sheet %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	if err := book.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Created sheet %s\n", name)
	return subcommands.ExitSuccess
}

// sheetsTable lists the sheets of a book.
type sheetsTable struct{ book *fintrack.Book }

func (sheetsTable) Columns() []string { return []string{"sheet", "kind", "entries"} }

func (t sheetsTable) Rows() iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for _, name := range t.book.Names() {
			sheet, err := t.book.Sheet(name)
			if err != nil {
				continue
			}
			if !yield([]any{name, sheet.KindName(), sheet.Len()}) {
				return
			}
		}
	}
}

// --- Config Command ---

type configCmd struct{}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "print the book folder, configuration and settings" }
func (*configCmd) Usage() string {
	return `fintrack config

  Prints the book folder, its config.yaml content and the settings used to
  read amounts and dates.
`
}

func (*configCmd) SetFlags(*flag.FlagSet) {}

// configView is what config prints.
type configView struct {
	Folder       string          `yaml:"folder"`
	Book         fintrack.Config `yaml:"book"`
	DecimalPoint string          `yaml:"decimal_point"`
	DateOrder    string          `yaml:"date_order"`
	Timezone     string          `yaml:"timezone"`
}

func (*configCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	book, err := OpenBook(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	settings := fintrack.CurrentSettings()
	out, err := yaml.Marshal(configView{
		Folder:       book.Folder(),
		Book:         book.Config(),
		DecimalPoint: settings.DecimalPoint,
		DateOrder:    settings.DateOrder.String(),
		Timezone:     settings.Location.String(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprint(stdout, string(out))
	return subcommands.ExitSuccess
}
