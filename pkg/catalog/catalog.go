package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/samber/lo"
)

//go:embed default.toml
var defaultCatalog []byte

const (
	CategoryText   = "text"
	CategoryImages = "images"
	CategorySounds = "sounds"

	// PairSeparator joins the two halves of a text pair into one value.
	PairSeparator = " / "
	// MinValues is the number of distinct values a 4x4 grid needs.
	MinValues = 8
)

// RequiredCategories are the categories offered by the menu.
var RequiredCategories = []string{CategoryText, CategoryImages, CategorySounds}

var ErrUnknownCategory = errors.New("unknown category")

// Category is a named set of pairable values.
type Category struct {
	Name   string
	Title  string
	Kind   memory.Kind
	Values []memory.Value
}

// Catalog maps category names to categories.
type Catalog struct {
	categories map[string]*Category
}

// File is the TOML layout of a catalog file.
type File struct {
	Categories map[string]CategoryConfig `toml:"categories"`
}

type CategoryConfig struct {
	Title  string     `toml:"title"`
	Kind   string     `toml:"kind"`
	Values []string   `toml:"values"`
	Pairs  [][]string `toml:"pairs"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	c, err := Parse(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("error parsing embedded catalog: %v", err)
	}
	return c, nil
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Parse decodes a catalog from TOML bytes.
func Parse(data []byte) (*Catalog, error) {
	return Decode(strings.NewReader(string(data)))
}

// Decode reads a catalog from TOML.
func Decode(r io.Reader) (*Catalog, error) {
	var file File
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("error decoding catalog: %w", err)
	}

	c := &Catalog{categories: make(map[string]*Category, len(file.Categories))}
	for name, cfg := range file.Categories {
		category, err := cfg.toCategory(name)
		if err != nil {
			return nil, err
		}
		c.categories[name] = category
	}
	return c, nil
}

func (cfg CategoryConfig) toCategory(name string) (*Category, error) {
	kind, err := memory.ParseKind(cfg.Kind)
	if err != nil {
		return nil, fmt.Errorf("category %s: %v", name, err)
	}

	values := lo.Map(cfg.Values, func(v string, _ int) memory.Value {
		return memory.Value(v)
	})
	for i, pair := range cfg.Pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("category %s: pair %d has %d entries, want 2", name, i, len(pair))
		}
		values = append(values, memory.Value(strings.Join(pair, PairSeparator)))
	}

	title := cfg.Title
	if title == "" {
		title = name
	}
	return &Category{
		Name:   name,
		Title:  title,
		Kind:   kind,
		Values: values,
	}, nil
}

// Category returns the category with the given name.
func (c *Catalog) Category(name string) (*Category, error) {
	category, ok := c.categories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	return category, nil
}

// Names returns the category names, required categories first in menu order.
func (c *Catalog) Names() []string {
	names := lo.Filter(RequiredCategories, func(name string, _ int) bool {
		_, ok := c.categories[name]
		return ok
	})
	extra := lo.Filter(lo.Keys(c.categories), func(name string, _ int) bool {
		return !lo.Contains(RequiredCategories, name)
	})
	sort.Strings(extra)
	return append(names, extra...)
}

// ValidationResult lists problems found in a catalog.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks that every required category exists and that every
// category has at least minValues distinct values.
func (c *Catalog) Validate(minValues int) *ValidationResult {
	result := &ValidationResult{}

	for _, name := range RequiredCategories {
		if _, ok := c.categories[name]; !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("missing required category %q", name))
		}
	}

	for _, name := range c.Names() {
		category := c.categories[name]
		distinct := lo.Uniq(category.Values)
		if len(distinct) < minValues {
			result.Errors = append(result.Errors, fmt.Sprintf("category %q has %d distinct values, need at least %d", name, len(distinct), minValues))
		}
		for value, n := range lo.CountValues(category.Values) {
			if n > 1 {
				result.Warnings = append(result.Warnings, fmt.Sprintf("category %q lists %q %d times", name, value, n))
			}
		}
		if lo.Contains(category.Values, memory.Value("")) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("category %q has an empty value", name))
		}
	}
	sort.Strings(result.Warnings)
	return result
}
