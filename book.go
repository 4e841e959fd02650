package fintrack

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Version is written in config.yaml.
const Version = "0.3.0"

// Default sheet names, they always exist in a Book.
const (
	DefaultRecords = "records"
	DefaultPlans   = "plans"
)

const configFile = "config.yaml"

// Config is the content of config.yaml: the version that wrote it and the
// kind of each sheet.
type Config struct {
	Version string            `yaml:"version"`
	Sheets  map[string]string `yaml:"sheets"`
}

// Book is a folder of named sheets.
//
// The folder holds config.yaml and one <name>.json file per sheet.
type Book struct {
	folder string
	sheets map[string]StoredSheet
}

// Open resolves folder, expanding a leading ~ and relative paths, and loads
// the book it contains. A missing folder is an empty book.
func Open(ctx context.Context, folder string) (*Book, error) {
	path, err := resolveFolder(folder)
	if err != nil {
		return nil, err
	}
	b := &Book{folder: path}
	if err := b.Load(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func resolveFolder(folder string) (string, error) {
	if folder == "~" || strings.HasPrefix(folder, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand %q: %w", folder, err)
		}
		folder = filepath.Join(home, folder[1:])
	}
	path, err := filepath.Abs(folder)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %q: %w", folder, err)
	}
	return path, nil
}

// Folder returns the absolute path of the book folder.
func (b *Book) Folder() string { return b.folder }

// Load reads the configuration and every sheet from the folder. Sheets whose
// file is missing are loaded empty.
func (b *Book) Load(ctx context.Context) error {
	cfg, err := b.readConfig()
	if err != nil {
		return err
	}

	names := slices.Sorted(maps.Keys(cfg.Sheets))
	loaded := make([]StoredSheet, len(names))
	for i, name := range names {
		sheet, err := NewSheetOf(cfg.Sheets[name])
		if err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		loaded[i] = sheet
	}

	// Sheet files are independent, read them concurrently.
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return b.readSheet(name, loaded[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	b.sheets = map[string]StoredSheet{
		DefaultRecords: NewRecords(),
		DefaultPlans:   NewPlans(),
	}
	for i, name := range names {
		b.sheets[name] = loaded[i]
	}
	log.Debug("loaded book", "folder", b.folder, "sheets", len(b.sheets))
	return nil
}

func (b *Book) readConfig() (Config, error) {
	path := filepath.Join(b.folder, configFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("no configuration found, starting empty", "folder", b.folder)
		return Config{Version: Version}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot read configuration: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("cannot decode %q: %w", path, err)
	}
	return cfg, nil
}

func (b *Book) readSheet(name string, sheet StoredSheet) error {
	path := b.sheetPath(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("could not find sheet file, starting empty", "sheet", name, "file", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read sheet %q: %w", name, err)
	}
	if err := sheet.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("cannot decode sheet %q: %w", name, err)
	}
	return nil
}

func (b *Book) sheetPath(name string) string {
	return filepath.Join(b.folder, name+".json")
}

// Save writes the configuration and every sheet, overwriting previous files.
func (b *Book) Save() error {
	if err := os.MkdirAll(b.folder, 0755); err != nil {
		return fmt.Errorf("cannot create book folder: %w", err)
	}
	cfg, err := yaml.Marshal(b.Config())
	if err != nil {
		return fmt.Errorf("cannot encode configuration: %w", err)
	}
	if err := os.WriteFile(filepath.Join(b.folder, configFile), cfg, 0644); err != nil {
		return fmt.Errorf("cannot write configuration: %w", err)
	}
	for name, sheet := range b.sheets {
		data, err := json.MarshalIndent(sheet, "", "  ")
		if err != nil {
			return fmt.Errorf("cannot encode sheet %q: %w", name, err)
		}
		if err := os.WriteFile(b.sheetPath(name), data, 0644); err != nil {
			return fmt.Errorf("cannot write sheet %q: %w", name, err)
		}
	}
	return nil
}

// Config describes the book as written to config.yaml.
func (b *Book) Config() Config {
	cfg := Config{Version: Version, Sheets: make(map[string]string, len(b.sheets))}
	for name, sheet := range b.sheets {
		cfg.Sheets[name] = sheet.KindName()
	}
	return cfg
}

// Names returns the sheet names, sorted.
func (b *Book) Names() []string {
	names := make([]string, 0, len(b.sheets))
	for name := range b.sheets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Sheet returns the named sheet or ErrNotFound.
func (b *Book) Sheet(name string) (StoredSheet, error) {
	sheet, ok := b.sheets[name]
	if !ok {
		return nil, fmt.Errorf("sheet %q: %w", name, ErrNotFound)
	}
	return sheet, nil
}

// Records returns the named sheet if it holds records.
func (b *Book) Records(name string) (*Sheet[Record], error) {
	return sheetAs[Record](b, name)
}

// Plans returns the named sheet if it holds plans.
func (b *Book) Plans(name string) (*Sheet[PlannedRecord], error) {
	return sheetAs[PlannedRecord](b, name)
}

func sheetAs[T Entry](b *Book, name string) (*Sheet[T], error) {
	sheet, err := b.Sheet(name)
	if err != nil {
		return nil, err
	}
	typed, ok := sheet.(*Sheet[T])
	if !ok {
		return nil, fmt.Errorf("sheet %q holds %s: %w", name, sheet.KindName(), ErrType)
	}
	return typed, nil
}

// Create adds an empty sheet of the given kind. It is an error if the name is
// already taken by a sheet of another kind.
func (b *Book) Create(name, kind string) (StoredSheet, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: invalid sheet name %q", ErrValue, name)
	}
	if sheet, ok := b.sheets[name]; ok {
		if sheet.KindName() != kind {
			return nil, fmt.Errorf("sheet %q already holds %s: %w", name, sheet.KindName(), ErrType)
		}
		return sheet, nil
	}
	sheet, err := NewSheetOf(kind)
	if err != nil {
		return nil, err
	}
	b.sheets[name] = sheet
	return sheet, nil
}

// Add inserts an entry in the named sheet and saves the book.
func (b *Book) Add(name string, args ...any) (Entry, error) {
	sheet, err := b.Sheet(name)
	if err != nil {
		return nil, err
	}
	e, err := sheet.Insert(args...)
	if err != nil {
		return nil, err
	}
	if err := b.Save(); err != nil {
		return nil, err
	}
	logAdded(name, e)
	return e, nil
}

func logAdded(name string, e Entry) {
	log.Info("added", "sheet", name, "entry", e, "when", humanize.RelTime(e.Key(), now(), "ago", "from now"))
}

// Slurp reads tab separated amount, description and timestamp lines from r
// into the named sheet, up to the first blank line. The book is saved once
// all lines are read. It returns the number of entries added.
func (b *Book) Slurp(name string, r io.Reader) (int, error) {
	sheet, err := b.Sheet(name)
	if err != nil {
		return 0, err
	}
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		fields := strings.Split(line, "\t")
		args := make([]any, len(fields))
		for i, f := range fields {
			args[i] = strings.TrimSpace(f)
		}
		e, err := sheet.Insert(args...)
		if err != nil {
			return n, fmt.Errorf("line %d %q: %w", n+1, line, err)
		}
		logAdded(name, e)
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, err
	}
	if n == 0 {
		return 0, nil
	}
	return n, b.Save()
}

// Future is a live view of every plan expanded from now until until.
func (b *Book) Future(until time.Time) *Combined {
	var parts []View
	for _, name := range b.Names() {
		if sheet := b.sheets[name]; sheet.KindName() == PlanKind.Name {
			parts = append(parts, NewExtract(sheet, Bounds{Until: until}))
		}
	}
	return NewCombined(parts...)
}

// Overview is a live view of the default records followed by every plan
// expanded from now until until.
func (b *Book) Overview(until time.Time) *Combined {
	parts := []View{b.sheets[DefaultRecords]}
	for _, name := range b.Names() {
		if sheet := b.sheets[name]; sheet.KindName() == PlanKind.Name {
			parts = append(parts, NewExtract(sheet, Bounds{Until: until}))
		}
	}
	return NewCombined(parts...)
}
