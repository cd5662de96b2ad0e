package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cloudweights/pkg/cloud"
)

// Catalog is an immutable mapping from corpus identifier to its count table.
// It has no mutation API; lookups return copies. A Catalog is safe for
// concurrent use.
type Catalog struct {
	tables map[string][]cloud.RawCount
}

// NewCatalog builds a catalog from tables. The input is copied, so later
// changes to tables do not affect the catalog.
func NewCatalog(tables map[string][]cloud.RawCount) *Catalog {
	c := &Catalog{tables: make(map[string][]cloud.RawCount, len(tables))}
	for id, counts := range tables {
		c.tables[id] = slices.Clone(counts)
	}
	return c
}

// Lookup returns a copy of the counts for corpus, preserving their order.
func (c *Catalog) Lookup(corpus string) ([]cloud.RawCount, bool) {
	counts, ok := c.tables[corpus]
	if !ok {
		return nil, false
	}
	return slices.Clone(counts), true
}

// Corpora returns the catalog's identifiers in sorted order.
func (c *Catalog) Corpora() []string {
	ids := make([]string, 0, len(c.tables))
	for id := range c.tables {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of corpora.
func (c *Catalog) Len() int { return len(c.tables) }

// catalogFile is the on-disk fixture layout shared by TOML and YAML:
//
//	[[corpus]]
//	name = "alice.txt"
//	  [[corpus.terms]]
//	  term = "alice"
//	  count = 409
type catalogFile struct {
	Corpus []struct {
		Name  string           `toml:"name" yaml:"name"`
		Terms []cloud.RawCount `toml:"terms" yaml:"terms"`
	} `toml:"corpus" yaml:"corpus"`
}

// LoadCatalog reads a catalog fixture file. The format is chosen by extension:
// .toml, .yaml or .yml.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data, filepath.Ext(path))
}

// ParseCatalog decodes catalog fixture data in the format named by ext.
func ParseCatalog(data []byte, ext string) (*Catalog, error) {
	var f catalogFile
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format: %q (must be .toml, .yaml or .yml)", ext)
	}

	tables := make(map[string][]cloud.RawCount, len(f.Corpus))
	for _, c := range f.Corpus {
		if c.Name == "" {
			return nil, fmt.Errorf("catalog entry without name")
		}
		if _, dup := tables[c.Name]; dup {
			return nil, fmt.Errorf("duplicate corpus in catalog: %s", c.Name)
		}
		tables[c.Name] = c.Terms
	}
	return NewCatalog(tables), nil
}
