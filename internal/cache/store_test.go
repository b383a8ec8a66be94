package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinsuki/pinsuki"
)

func testSnapshot() *pinsuki.Snapshot {
	return &pinsuki.Snapshot{
		Pins: []pinsuki.Pin{
			{
				Href:    "https://example.com/a",
				Title:   "first",
				Tags:    "go vim",
				TagList: []string{"go", "vim"},
				Shared:  "yes",
				ToRead:  "no",
				Time:    time.Date(2020, 6, 1, 10, 0, 0, 0, time.UTC),
			},
			{
				Href:     "https://example.com/b",
				Title:    "second",
				Tags:     "rust",
				TagList:  []string{"rust"},
				Shared:   "no",
				ToRead:   "yes",
				Extended: "longer notes",
				Time:     time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC),
			},
		},
		Tags: []pinsuki.Tag{
			{Name: "go", Count: 1},
			{Name: "rust", Count: 1},
			{Name: "vim", Count: 1},
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	want := testSnapshot()
	require.NoError(t, store.Replace(want))

	got, err := store.Load()
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_NoSnapshot(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

// One file missing still means "never synchronized".
func TestStore_HalfMissing(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, PinsFileName), []byte("[]"), 0644))

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

// Corruption is a real error, never downgraded to an empty snapshot.
func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Replace(testSnapshot()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, PinsFileName), []byte("{truncated"), 0644))

	_, err = store.Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSnapshot)
}

func TestStore_ReplaceOverwrites(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Replace(testSnapshot()))

	next := &pinsuki.Snapshot{
		Pins: []pinsuki.Pin{{Href: "https://example.com/only", Shared: "yes", ToRead: "no"}},
		Tags: []pinsuki.Tag{},
	}
	require.NoError(t, store.Replace(next))

	got, err := store.Load()
	require.NoError(t, err)
	require.Len(t, got.Pins, 1)
	assert.Equal(t, "https://example.com/only", got.Pins[0].Href)
	assert.Empty(t, got.Tags)
}

// No temp litter after a successful replacement.
func TestStore_NoStaleTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Replace(testSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{PinsFileName, TagsFileName}, names)
}

func TestNewStore_MissingDir(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
