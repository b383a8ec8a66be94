package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinsuki/pinsuki"
	"github.com/pinsuki/pinsuki/internal/cache"
	"github.com/pinsuki/pinsuki/pkg/search"
)

// fakeClient scripts the remote surface and records mutation calls.
type fakeClient struct {
	pins    []pinsuki.Pin
	dropped int
	tags    []pinsuki.Tag
	updated time.Time

	pinsErr   error
	tagsErr   error
	updateErr error

	added   []*pinsuki.Pin
	deleted []string
	renamed [][2]string
}

func (f *fakeClient) AllPins(context.Context) ([]pinsuki.Pin, int, error) {
	return f.pins, f.dropped, f.pinsErr
}

func (f *fakeClient) TagsFreq(context.Context) ([]pinsuki.Tag, error) {
	return f.tags, f.tagsErr
}

func (f *fakeClient) LastUpdate(context.Context) (time.Time, error) {
	return f.updated, f.updateErr
}

func (f *fakeClient) Add(_ context.Context, pin *pinsuki.Pin) error {
	f.added = append(f.added, pin)
	return nil
}

func (f *fakeClient) Delete(_ context.Context, rawurl string) error {
	f.deleted = append(f.deleted, rawurl)
	return nil
}

func (f *fakeClient) RenameTag(_ context.Context, old, new string) error {
	f.renamed = append(f.renamed, [2]string{old, new})
	return nil
}

func (f *fakeClient) DeleteTag(context.Context, string) error { return nil }

func (f *fakeClient) SuggestTags(context.Context, string) ([]string, error) {
	return []string{"golang"}, nil
}

func newTestSyncer(t *testing.T, client Client) (*Syncer, *cache.Store) {
	t.Helper()
	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)
	return New(client, store), store
}

func remotePins() []pinsuki.Pin {
	return []pinsuki.Pin{
		{Href: "https://example.com/a", Title: "first", Tags: "golang",
			TagList: []string{"golang"}, Shared: "yes", ToRead: "no",
			Time: time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Href: "https://example.com/b", Title: "second", Tags: "rust",
			TagList: []string{"rust"}, Shared: "no", ToRead: "no",
			Time: time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func remoteTags() []pinsuki.Tag {
	return []pinsuki.Tag{{Name: "golang", Count: 1}, {Name: "rust", Count: 1}}
}

func TestSyncer_SyncAndSearch(t *testing.T) {
	client := &fakeClient{pins: remotePins(), tags: remoteTags(), dropped: 1}
	snc, store := newTestSyncer(t, client)

	require.NoError(t, snc.Sync(context.Background()))

	// disk and memory agree
	onDisk, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, onDisk.Pins, 2)
	assert.Len(t, onDisk.Tags, 2)

	hits, err := snc.SearchPins("golang", search.Exact, false)
	require.NoError(t, err)
	if assert.Len(t, hits, 1) {
		assert.Equal(t, "https://example.com/a", hits[0].Href)
	}

	tags, err := snc.SearchTags("rst", search.Fuzzy)
	require.NoError(t, err)
	if assert.Len(t, tags, 1) {
		assert.Equal(t, "rust", tags[0].Name)
	}
}

func TestSyncer_LazyLoad(t *testing.T) {
	client := &fakeClient{pins: remotePins(), tags: remoteTags()}
	snc, store := newTestSyncer(t, client)
	require.NoError(t, snc.Sync(context.Background()))

	// a fresh syncer over the same store loads from disk, no remote call
	cold := New(&fakeClient{pinsErr: errors.New("remote must not be hit")}, store)
	snap, err := cold.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Pins, 2)

	// second access returns the cached snapshot
	again, err := cold.Snapshot()
	require.NoError(t, err)
	assert.Same(t, snap, again)
}

func TestSyncer_SnapshotMissing(t *testing.T) {
	snc, _ := newTestSyncer(t, &fakeClient{})

	_, err := snc.Snapshot()
	assert.ErrorIs(t, err, cache.ErrNoSnapshot)

	_, err = snc.SearchPins("anything", search.Exact, false)
	assert.ErrorIs(t, err, cache.ErrNoSnapshot)
}

// A failed tag fetch must leave both cache files and the in-memory
// snapshot exactly as they were.
func TestSyncer_SyncTransactional(t *testing.T) {
	client := &fakeClient{pins: remotePins(), tags: remoteTags()}
	snc, store := newTestSyncer(t, client)
	require.NoError(t, snc.Sync(context.Background()))

	client.pins = append(remotePins(), pinsuki.Pin{Href: "https://example.com/c"})
	client.tagsErr = errors.New("tags/get: 500")

	err := snc.Sync(context.Background())
	require.Error(t, err)

	onDisk, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, onDisk.Pins, 2)

	snap, err := snc.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Pins, 2)
}

func TestSyncer_SyncPinsFetchFails(t *testing.T) {
	client := &fakeClient{pinsErr: errors.New("posts/all: 500")}
	snc, store := newTestSyncer(t, client)

	require.Error(t, snc.Sync(context.Background()))

	_, err := store.Load()
	assert.ErrorIs(t, err, cache.ErrNoSnapshot)
}

func TestSyncer_Outdated(t *testing.T) {
	remote := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	snc, _ := newTestSyncer(t, &fakeClient{updated: remote})

	tests := []struct {
		name  string
		since time.Time
		want  bool
	}{
		{"older_is_stale", remote.Add(-time.Hour), true},
		{"equal_is_fresh", remote, false},
		{"newer_is_fresh", remote.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := snc.Outdated(context.Background(), tt.since)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSyncer_OutdatedRemoteError(t *testing.T) {
	snc, _ := newTestSyncer(t, &fakeClient{updateErr: errors.New("posts/update: 503")})

	_, err := snc.Outdated(context.Background(), time.Now())
	assert.Error(t, err)
}

// Mutations go straight to the remote and leave the snapshot untouched.
func TestSyncer_MutationsBypassSnapshot(t *testing.T) {
	client := &fakeClient{pins: remotePins(), tags: remoteTags()}
	snc, _ := newTestSyncer(t, client)
	require.NoError(t, snc.Sync(context.Background()))

	pin, err := pinsuki.NewPin("https://example.com/new", "new", []string{"misc"}, false, false, "")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, snc.Add(ctx, pin))
	require.NoError(t, snc.Delete(ctx, "https://example.com/a"))
	require.NoError(t, snc.RenameTag(ctx, "golang", "go"))

	assert.Len(t, client.added, 1)
	assert.Equal(t, []string{"https://example.com/a"}, client.deleted)
	assert.Equal(t, [][2]string{{"golang", "go"}}, client.renamed)

	snap, err := snc.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Pins, 2)
	assert.Equal(t, "golang", snap.Tags[0].Name)
}
