package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pinsuki/pinsuki"
)

var testPins = []pinsuki.Pin{
	{Href: "https://blog.golang.org/error-handling", Title: "Error handling in Go", Tags: "golang errors"},
	{Href: "https://doc.rust-lang.org/book/", Title: "The Rust Book", Tags: "rust reading"},
	{Href: "https://pkg.go.dev/time", Title: "package datetime helpers", Tags: "golang stdlib"},
	{Href: "https://example.com/misc", Title: "Notes (v1.2)", Tags: "notes"},
}

var testTags = []pinsuki.Tag{
	{Name: "golang", Count: 2},
	{Name: "rust", Count: 1},
	{Name: "datetime", Count: 4},
	{Name: "notes", Count: 1},
}

func hrefs(pins []*pinsuki.Pin) []string {
	var out []string
	for _, p := range pins {
		out = append(out, p.Href)
	}
	return out
}

func TestPins_Exact(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"matches_url", "rust-lang", []string{"https://doc.rust-lang.org/book/"}},
		{"matches_title", "error handling", []string{"https://blog.golang.org/error-handling"}},
		{"matches_tags", "stdlib", []string{"https://pkg.go.dev/time"}},
		{"case_folded_both_ways", "ERROR", []string{"https://blog.golang.org/error-handling"}},
		{"preserves_collection_order", "golang", []string{
			"https://blog.golang.org/error-handling",
			"https://pkg.go.dev/time",
		}},
		{"special_chars_are_literal", "(v1.2)", []string{"https://example.com/misc"}},
		{"dot_does_not_wildcard", "v132", nil},
		{"no_match", "haskell", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pins(testPins, tt.query, Exact)
			assert.Equal(t, tt.want, hrefs(got))
		})
	}
}

func TestPins_Fuzzy(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"ordered_subsequence", "dtm", []string{"https://pkg.go.dev/time"}},
		{"case_insensitive", "RuSt", []string{"https://doc.rust-lang.org/book/"}},
		{"order_matters", "mtd", nil},
		{"no_match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pins(testPins, tt.query, Fuzzy)
			assert.Equal(t, tt.want, hrefs(got))
		})
	}
}

func TestPinsByTag(t *testing.T) {
	got := PinsByTag(testPins, "golang", Exact)
	assert.Equal(t, []string{
		"https://blog.golang.org/error-handling",
		"https://pkg.go.dev/time",
	}, hrefs(got))

	// "rust" appears in a URL but not in that pin's tags.
	got = PinsByTag(testPins, "book", Exact)
	assert.Nil(t, got)
}

func TestTags(t *testing.T) {
	got := Tags(testTags, "dtm", Fuzzy)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "datetime", got[0].Name)
		assert.Equal(t, 4, got[0].Count)
	}

	got = Tags(testTags, "GO", Exact)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "golang", got[0].Name)
	}

	assert.Nil(t, Tags(testTags, "missing", Exact))
}

// Multi-keyword queries intersect: every keyword must match.
func TestNarrow(t *testing.T) {
	got := Pins(testPins, "golang", Exact)
	got = Narrow(got, "errors", Exact, false)
	assert.Equal(t, []string{"https://blog.golang.org/error-handling"}, hrefs(got))

	got = Pins(testPins, "golang", Exact)
	got = Narrow(got, "stdlib", Exact, true)
	assert.Equal(t, []string{"https://pkg.go.dev/time"}, hrefs(got))

	got = Narrow(Pins(testPins, "golang", Exact), "rust", Exact, false)
	assert.Nil(t, got)
}

// Results point into the caller's slice so edits show through.
func TestPins_ReturnsReferences(t *testing.T) {
	pins := []pinsuki.Pin{{Href: "https://example.com", Title: "old"}}
	got := Pins(pins, "example", Exact)
	if assert.Len(t, got, 1) {
		got[0].Title = "new"
		assert.Equal(t, "new", pins[0].Title)
	}
}
