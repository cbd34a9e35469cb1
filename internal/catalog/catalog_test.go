package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/faq-catalog/internal/kv"
	"github.com/rcliao/faq-catalog/internal/model"
	"github.com/rcliao/faq-catalog/internal/recent"
)

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestCatalog(t *testing.T, store kv.Store) *Catalog {
	t.Helper()
	if store == nil {
		store = kv.NewMemory()
	}
	c, err := Open(context.Background(), store, Options{
		Actor: "tester",
		Now:   func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return c
}

func draft(title string) model.Entry {
	return model.Entry{Title: title, Answer: "answer for " + title, Category: "Cờ Vua"}
}

// fill replaces the catalogue with n entries titled e00..e(n-1), in order.
func fill(t *testing.T, c *Catalog, n int) []model.Entry {
	t.Helper()
	entries := make([]model.Entry, n)
	for i := range entries {
		entries[i] = model.Entry{ID: fmt.Sprintf("id-%02d", i), Title: fmt.Sprintf("e%02d", i), Answer: "a"}
	}
	require.NoError(t, c.ReplaceAll(context.Background(), entries))
	return entries
}

func TestOpenFallsBackToSeed(t *testing.T) {
	c := newTestCatalog(t, nil)
	assert.Equal(t, 1, c.Len())
	tax := c.Taxonomy()
	assert.Len(t, tax.Categories, 5)
	assert.Len(t, tax.Tags, 4)
	assert.Empty(t, c.Recent())
}

func TestOpenPrefersStoredCollections(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Put(ctx, KeyEntries, []byte(`[]`)))
	require.NoError(t, store.Put(ctx, KeySubjects, []byte(`["Rèn Chữ"]`)))

	c := newTestCatalog(t, store)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, []string{"Rèn Chữ"}, c.Taxonomy().Subjects)
	// untouched collections still come from the seed
	assert.Len(t, c.Taxonomy().Categories, 5)
}

func TestOpenRejectsCorruptSnapshot(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Put(context.Background(), KeyTags, []byte(`{not json`)))
	_, err := Open(context.Background(), store, Options{})
	assert.Error(t, err)
}

func TestCreatePrependsAndStamps(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)

	e, err := c.Create(ctx, draft("Học phí cờ vua"))
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, fixedNow, e.CreatedAt)
	assert.Equal(t, "tester", e.CreatedBy)
	assert.Equal(t, model.StatusPending, e.Status)
	assert.Equal(t, model.DefaultEntryType, e.Type)

	all := c.List(Filter{})
	require.Len(t, all, 2)
	assert.Equal(t, e.ID, all[0].ID)
}

func TestCreateValidatesAndRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)

	_, err := c.Create(ctx, model.Entry{Title: "no answer"})
	assert.ErrorIs(t, err, model.ErrInvalid)

	_, err = c.Create(ctx, model.Entry{ID: "1001", Title: "t", Answer: "a"})
	assert.ErrorIs(t, err, model.ErrInvalid)
	assert.Equal(t, 1, c.Len())
}

func TestUpdateInPlaceKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)
	fill(t, c, 3)

	before, err := c.Get("id-01")
	require.NoError(t, err)

	require.NoError(t, c.Update(ctx, "id-01", model.Entry{ID: "other", Title: "renamed", Answer: "x", CreatedAt: fixedNow.Add(time.Hour)}))

	all := c.List(Filter{})
	assert.Equal(t, "id-01", all[1].ID)
	assert.Equal(t, "renamed", all[1].Title)
	assert.Equal(t, before.CreatedAt, all[1].CreatedAt)
	require.NotNil(t, all[1].LastModifiedAt)
	assert.Equal(t, "tester", all[1].LastModifiedBy)
}

func TestUpdateUnknownIsNoop(t *testing.T) {
	c := newTestCatalog(t, nil)
	before := c.List(Filter{})
	require.NoError(t, c.Update(context.Background(), "missing", draft("x")))
	assert.Equal(t, before, c.List(Filter{}))
}

func TestSaveCreatesOrUpdates(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)

	seedEntry, err := c.Get("1001")
	require.NoError(t, err)
	seedEntry.Answer = "updated answer"
	saved, err := c.Save(ctx, seedEntry)
	require.NoError(t, err)
	assert.Equal(t, "updated answer", saved.Answer)
	assert.Equal(t, 1, c.Len())

	saved, err = c.Save(ctx, model.Entry{ID: "fresh", Title: "new", Answer: "a"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", saved.ID)
	assert.Equal(t, 2, c.Len())
}

func TestDuplicateIsDraftUntilSaved(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)
	orig, err := c.Get("1001")
	require.NoError(t, err)

	d := c.Duplicate(orig)
	assert.NotEqual(t, orig.ID, d.ID)
	assert.Equal(t, orig.Code+CopyCodeSuffix, d.Code)
	assert.Equal(t, orig.Title+CopyTitleSuffix, d.Title)
	assert.Equal(t, fixedNow, d.CreatedAt)
	assert.Equal(t, orig.Answer, d.Answer)

	for _, e := range c.List(Filter{Scope: ScopeAll}) {
		assert.NotEqual(t, d.ID, e.ID)
	}

	_, err = c.Save(ctx, d)
	require.NoError(t, err)
	got, err := c.Get(d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Title, got.Title)
	assert.Equal(t, fixedNow, got.CreatedAt)
}

func TestDuplicateMintsDistinctIDs(t *testing.T) {
	c := newTestCatalog(t, nil)
	orig, _ := c.Get("1001")
	seen := map[string]bool{orig.ID: true}
	for i := 0; i < 50; i++ {
		d := c.Duplicate(orig)
		assert.False(t, seen[d.ID], "id %s minted twice", d.ID)
		seen[d.ID] = true
	}
}

func TestRemovePurgesRecency(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := newTestCatalog(t, store)
	fill(t, c, 3)

	_, err := c.View(ctx, "id-00")
	require.NoError(t, err)
	_, err = c.View(ctx, "id-01")
	require.NoError(t, err)

	require.NoError(t, c.Remove(ctx, "id-00"))
	_, err = c.Get("id-00")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, []string{"id-01"}, c.Recent())

	raw, ok, err := store.Get(ctx, KeyRecentIDs)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["id-01"]`, string(raw))

	require.NoError(t, c.Remove(ctx, "id-00"))
	assert.Equal(t, 2, c.Len())
}

func TestToggleFavoriteTwiceRestores(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)

	on, err := c.ToggleFavorite(ctx, "1001")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Len(t, c.List(Filter{Scope: ScopeFavorites}), 1)

	on, err = c.ToggleFavorite(ctx, "1001")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, c.List(Filter{Scope: ScopeFavorites}))

	on, err = c.ToggleFavorite(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)
	require.NoError(t, c.ReplaceAll(ctx, []model.Entry{
		{ID: "a", Title: "Học phí Cờ Vua", Category: "Học Phí", Keywords: []string{"tiền học"}, Tags: []string{"t2"}},
		{ID: "b", Title: "Lịch học", Question: "Khi nào có lớp VẼ?", Category: "Vẽ", Tags: []string{"t3"}},
		{ID: "c", Title: "Giới thiệu", Category: "Giới thiệu", Keywords: []string{"Trung Tâm"}, Tags: []string{"t1", "t2"}},
	}))

	ids := func(es []model.Entry) []string {
		out := []string{}
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(c.List(Filter{})))
	assert.Equal(t, []string{"a"}, ids(c.List(Filter{Query: "cờ vua"})))
	assert.Equal(t, []string{"b"}, ids(c.List(Filter{Query: "vẽ"})))
	assert.Equal(t, []string{"c"}, ids(c.List(Filter{Query: "trung tâm"})))
	assert.Equal(t, []string{"a"}, ids(c.List(Filter{Query: "TIỀN"})))
	assert.Equal(t, []string{"b"}, ids(c.List(Filter{Category: "Vẽ"})))
	assert.Equal(t, []string{"a", "b", "c"}, ids(c.List(Filter{Category: Any})))
	assert.Empty(t, c.List(Filter{Category: "vẽ"}))
	assert.Equal(t, []string{"a", "c"}, ids(c.List(Filter{Tag: "Khuyến mãi"})))
	assert.Equal(t, []string{"a", "c"}, ids(c.List(Filter{Tag: "t2"})))
	assert.Equal(t, []string{"c"}, ids(c.List(Filter{Tag: "Khuyến mãi", Query: "giới"})))
	assert.Empty(t, c.List(Filter{Tag: "nonexistent"}))
}

func TestListRecentOrderAndStaleIDs(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)
	fill(t, c, 4)

	for _, id := range []string{"id-00", "id-02", "id-03"} {
		_, err := c.View(ctx, id)
		require.NoError(t, err)
	}
	// a stale reference left behind by an older snapshot
	c.recent = recent.Touch(c.recent, "gone")

	got := c.List(Filter{Scope: ScopeRecent})
	require.Len(t, got, 3)
	assert.Equal(t, "id-03", got[0].ID)
	assert.Equal(t, "id-02", got[1].ID)
	assert.Equal(t, "id-00", got[2].ID)

	got = c.List(Filter{Scope: ScopeRecent, Query: "e02"})
	require.Len(t, got, 1)
	assert.Equal(t, "id-02", got[0].ID)
}

func TestListReturnsCopies(t *testing.T) {
	c := newTestCatalog(t, nil)
	got := c.List(Filter{})
	got[0].Title = "mutated"
	got[0].Keywords[0] = "mutated"

	e, _ := c.Get("1001")
	assert.NotEqual(t, "mutated", e.Title)
	assert.NotEqual(t, "mutated", e.Keywords[0])
}

func TestPaginate(t *testing.T) {
	c := newTestCatalog(t, nil)
	entries := fill(t, c, 23)
	list := c.List(Filter{})

	p := Paginate(list, 9, 3)
	require.Len(t, p.Items, 5)
	assert.Equal(t, entries[18].ID, p.Items[0].ID)
	assert.Equal(t, entries[22].ID, p.Items[4].ID)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 23, p.Total)

	p = Paginate(list, 9, 4)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)

	p = Paginate(list, 15, 1)
	assert.Len(t, p.Items, 15)
	p = Paginate(list, 15, 0)
	assert.Equal(t, 1, p.Number)

	p = Paginate(nil, 9, 1)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
}

func TestPaginateHugeValues(t *testing.T) {
	list := make([]model.Entry, 23)

	p := Paginate(list, 9, math.MaxInt/9+2)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.TotalPages)

	p = Paginate(list, 9, math.MaxInt)
	assert.Empty(t, p.Items)

	p = Paginate(list, math.MaxInt, 1)
	assert.Len(t, p.Items, 23)
	assert.Equal(t, 1, p.TotalPages)

	p = Paginate(list, math.MaxInt, 2)
	assert.Empty(t, p.Items)
}

func TestViewAndUse(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)

	before, _ := c.Get("1001")
	e, err := c.Use(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, before.UsageCount+1, e.UsageCount)
	assert.Equal(t, []string{"1001"}, c.Recent())

	_, err = c.View(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, []string{"1001"}, c.Recent())

	_, err = c.View(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = c.Use(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRecencyBounded(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)
	fill(t, c, 15)
	for i := 0; i < 15; i++ {
		_, err := c.View(ctx, fmt.Sprintf("id-%02d", i))
		require.NoError(t, err)
	}
	assert.Len(t, c.Recent(), recent.Limit)
	assert.Equal(t, "id-14", c.Recent()[0])
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)
	fill(t, c, 1)

	require.NoError(t, c.SetStatus(ctx, "id-00", model.StatusApproved))
	e, _ := c.Get("id-00")
	assert.Equal(t, model.StatusApproved, e.Status)
	assert.Equal(t, "tester", e.ApprovedBy)
	require.NotNil(t, e.ApprovedAt)

	assert.ErrorIs(t, c.SetStatus(ctx, "id-00", "archived"), model.ErrInvalid)
	assert.NoError(t, c.SetStatus(ctx, "missing", model.StatusHidden))
}

func TestImportResolvesTagNames(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := newTestCatalog(t, store)

	stored, err := c.Import(ctx, []model.Entry{
		{ID: "1001", Title: "collides with seed", Tags: []string{"Quan trọng", "Ưu đãi hè"}},
		{Title: "no id", Tags: []string{"Ưu đãi hè"}},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotEqual(t, "1001", stored[0].ID)
	assert.NotEmpty(t, stored[1].ID)

	all := c.List(Filter{})
	require.Len(t, all, 3)
	assert.Equal(t, stored[0].ID, all[0].ID)
	assert.Equal(t, stored[1].ID, all[1].ID)
	assert.Equal(t, "1001", all[2].ID)

	assert.Equal(t, []string{"Quan trọng", "Ưu đãi hè"}, c.TagNames(all[0]))
	assert.Len(t, c.Taxonomy().Tags, 5)
	assert.Equal(t, all[0].Tags[1], all[1].Tags[0])

	raw, ok, err := store.Get(ctx, KeyTags)
	require.NoError(t, err)
	require.True(t, ok)
	var tags []model.Tag
	require.NoError(t, json.Unmarshal(raw, &tags))
	assert.Len(t, tags, 5)
	assert.Equal(t, model.DefaultTagColor, tags[4].Color)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t, nil)
	_, err := c.View(ctx, "1001")
	require.NoError(t, err)
	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Recent())
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := kv.NewSQLite(path)
	require.NoError(t, err)
	c := newTestCatalog(t, store)
	e, err := c.Create(ctx, draft("Học thử miễn phí"))
	require.NoError(t, err)
	_, err = c.View(ctx, e.ID)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	store, err = kv.NewSQLite(path)
	require.NoError(t, err)
	c = newTestCatalog(t, store)
	defer c.Close()

	got, err := c.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Học thử miễn phí", got.Title)
	assert.Equal(t, []string{e.ID}, c.Recent())

	snaps, err := c.Snapshots(ctx)
	require.NoError(t, err)
	keys := []string{}
	for _, s := range snaps {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{KeyEntries, KeyRecentIDs}, keys)
}

type failingStore struct {
	kv.Store
}

func (failingStore) Put(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func (failingStore) PutMany(context.Context, map[string][]byte) error {
	return errors.New("quota exceeded")
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	c := newTestCatalog(t, failingStore{kv.NewMemory()})

	_, err := c.Create(context.Background(), draft("kept"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save")
	assert.Equal(t, 2, c.Len())
}
