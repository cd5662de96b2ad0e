package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cloudweights/pkg/cloud"
)

func TestReferenceCatalog(t *testing.T) {
	ref := Reference()
	assert.Equal(t, 6, ref.Len())

	for _, id := range ref.Corpora() {
		counts, ok := ref.Lookup(id)
		require.True(t, ok, id)
		assert.Len(t, counts, 20, id)
		for i := 1; i < len(counts); i++ {
			assert.GreaterOrEqual(t, counts[i-1].Count, counts[i].Count,
				"%s not sorted descending at %d", id, i)
		}
	}
}

func TestReferencePromessiSposi(t *testing.T) {
	counts, err := NewStatic(nil).Fetch(context.Background(), "promessi_sposi.txt")
	require.NoError(t, err)
	require.Len(t, counts, 20)
	assert.Equal(t, cloud.RawCount{Term: "renzo", Count: 585}, counts[0])
}

func TestCatalogIsImmutable(t *testing.T) {
	input := map[string][]cloud.RawCount{"c": {{Term: "a", Count: 1}}}
	c := NewCatalog(input)

	input["c"][0].Count = 99
	input["d"] = nil

	got, ok := c.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, uint64(1), got[0].Count)
	assert.Equal(t, 1, c.Len())

	got[0].Term = "mutated"
	again, _ := c.Lookup("c")
	assert.Equal(t, "a", again[0].Term)
}

func TestCatalogCorporaSorted(t *testing.T) {
	c := NewCatalog(map[string][]cloud.RawCount{"b": nil, "a": nil, "c": nil})
	assert.Equal(t, []string{"a", "b", "c"}, c.Corpora())
}

const tomlCatalog = `
[[corpus]]
name = "tiny.txt"

  [[corpus.terms]]
  term = "uno"
  count = 3

  [[corpus.terms]]
  term = "due"
  count = 1
`

const yamlCatalog = `
corpus:
  - name: tiny.txt
    terms:
      - term: uno
        count: 3
      - term: due
        count: 1
`

func TestParseCatalog(t *testing.T) {
	want := []cloud.RawCount{{Term: "uno", Count: 3}, {Term: "due", Count: 1}}

	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"toml", tomlCatalog, ".toml"},
		{"yaml", yamlCatalog, ".yaml"},
		{"yml upper", yamlCatalog, ".YML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCatalog([]byte(tt.data), tt.ext)
			require.NoError(t, err)
			got, ok := c.Lookup("tiny.txt")
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"unsupported extension", tomlCatalog, ".json"},
		{"bad toml", "[[corpus]\nname=", ".toml"},
		{"missing name", "[[corpus]]\n[[corpus.terms]]\nterm = \"x\"\ncount = 1\n", ".toml"},
		{"duplicate", "corpus:\n  - name: a\n  - name: a\n", ".yaml"},
		{"negative count", "corpus:\n  - name: a\n    terms:\n      - term: x\n        count: -1\n", ".yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.data), tt.ext)
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixtures.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlCatalog), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"tiny.txt"}, c.Corpora())

	_, err = LoadCatalog(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestStaticFetch(t *testing.T) {
	src := NewStatic(NewCatalog(map[string][]cloud.RawCount{
		"x.txt": {{Term: "b", Count: 2}, {Term: "a", Count: 5}},
	}))
	ctx := context.Background()

	got, err := src.Fetch(ctx, "x.txt")
	require.NoError(t, err)
	assert.Equal(t, []cloud.RawCount{{Term: "b", Count: 2}, {Term: "a", Count: 5}}, got, "order must be preserved")

	_, err = src.Fetch(ctx, "nonexistent.txt")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	assert.False(t, errors.Is(err, ErrUnavailable))

	ids, err := src.Corpora(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt"}, ids)
}

func TestStaticFetchNotFoundReference(t *testing.T) {
	_, err := NewStatic(nil).Fetch(context.Background(), "nonexistent.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStaticFetchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStatic(nil).Fetch(ctx, "alice.txt")
	assert.ErrorIs(t, err, context.Canceled)
}
