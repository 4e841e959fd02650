// Package cmd implements the fintrack command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/joho/godotenv"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	folderFlag = flag.String("folder", "", "Book folder, defaults to $FINTRACK_FOLDER or ~/.fintrack")
	sheetFlag  = flag.String("sheet", "", "Sheet to work on, defaults to records or plans depending on the command")
	verbose    = flag.Bool("v", false, "Log debug messages")
)

// Environment variables read by the application, on top of the ones read by
// fintrack.SettingsFromEnv.
const (
	EnvFolder   = "FINTRACK_FOLDER"
	EnvCurrency = "FINTRACK_CURRENCY"
	EnvLogLevel = "LOG_LEVEL"
)

// stdout receives command output, tests replace it.
var stdout io.Writer = os.Stdout

// Setup loads .env.local and .env from the current folder, installs the
// default logger and applies the locale settings. It must be called after
// flags are parsed.
func Setup() error {
	// Load does not override variables already set, so .env.local wins.
	var loaded []string
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err == nil {
			loaded = append(loaded, file)
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "🏦"})
	level := log.InfoLevel
	if v := os.Getenv(EnvLogLevel); v != "" {
		l, err := log.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		level = l
	}
	if *verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	log.SetDefault(logger)
	if len(loaded) > 0 {
		log.Debug("loaded environment", "files", loaded)
	}

	settings, err := fintrack.SettingsFromEnv(os.Getenv)
	if err != nil {
		return err
	}
	fintrack.Configure(settings)
	log.Debug("settings", "decimal_point", settings.DecimalPoint, "date_order", settings.DateOrder, "timezone", settings.Location)
	return nil
}

func folder() string {
	if *folderFlag != "" {
		return *folderFlag
	}
	if v := os.Getenv(EnvFolder); v != "" {
		return v
	}
	return "~/.fintrack"
}

// sheetName returns the -sheet flag or def.
func sheetName(def string) string {
	if *sheetFlag != "" {
		return *sheetFlag
	}
	return def
}

// OpenBook opens the book of the -folder flag.
func OpenBook(ctx context.Context) (*fintrack.Book, error) {
	b, err := fintrack.Open(ctx, folder())
	if err != nil {
		return nil, fmt.Errorf("cannot open book: %w", err)
	}
	return b, nil
}

// output holds the flags common to commands that print tables.
type output struct {
	format   string
	currency string
}

func (o *output) SetFlags(f *flag.FlagSet) {
	f.StringVar(&o.format, "format", "grid", "Output format, grid or markdown")
	f.StringVar(&o.currency, "currency", "", "ISO 4217 code to format amounts, defaults to $FINTRACK_CURRENCY")
}

func (o *output) options() renderer.Options {
	currency := o.currency
	if currency == "" {
		currency = os.Getenv(EnvCurrency)
	}
	return renderer.Options{
		Rules:    renderer.DefaultRules(),
		Currency: strings.ToUpper(currency),
		Now:      fintrack.Now(),
	}
}

// print writes t in the selected format.
func (o *output) print(t renderer.Table) error {
	switch o.format {
	case "grid":
		_, err := fmt.Fprintln(stdout, renderer.Grid(t, o.options()))
		return err
	case "markdown", "md":
		return renderer.Markdown(stdout, t, o.options())
	default:
		return fmt.Errorf("%w: unknown format %q, want grid or markdown", fintrack.ErrValue, o.format)
	}
}

// printMarkdown renders md for the terminal, or prints it raw if it cannot.
func printMarkdown(md string) { writeMarkdown(stdout, md) }

func writeMarkdown(w io.Writer, md string) {
	out, err := glamour.RenderWithEnvironmentConfig(md)
	if err != nil {
		log.Debug("cannot render markdown", "error", err)
		out = md
	}
	fmt.Fprint(w, out)
}
