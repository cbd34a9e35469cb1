// Package catalog owns the knowledge entries, their taxonomies and the
// recency list. Every command applies an in-memory change and then writes a
// full snapshot of just the collections it touched.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rcliao/faq-catalog/internal/kv"
	"github.com/rcliao/faq-catalog/internal/model"
	"github.com/rcliao/faq-catalog/internal/seed"
)

// Store keys, one per collection.
const (
	KeyEntries       = "entries"
	KeyCategories    = "categories"
	KeySubCategories = "subCategories"
	KeySubjects      = "subjects"
	KeyTags          = "tags"
	KeyContentTypes  = "contentTypes"
	KeyRecentIDs     = "recentIds"
)

// Keys lists every collection key.
var Keys = []string{KeyEntries, KeyCategories, KeySubCategories, KeySubjects, KeyTags, KeyContentTypes, KeyRecentIDs}

// Options configures a Catalog.
type Options struct {
	// Actor is written into createdBy/lastModifiedBy/approvedBy.
	Actor string
	// Logger receives debug events for every write. Defaults to a no-op logger.
	Logger *zerolog.Logger
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Catalog is the single owner of catalogue state.
type Catalog struct {
	store   kv.Store
	log     zerolog.Logger
	now     func() time.Time
	actor   string
	entropy io.Reader

	entries []model.Entry
	tax     model.Taxonomy
	recent  []string
}

// Open loads every collection from store. Collections that were never
// written fall back to the built-in seed.
func Open(ctx context.Context, store kv.Store, opts Options) (*Catalog, error) {
	c := &Catalog{
		store:   store,
		log:     zerolog.Nop(),
		now:     time.Now,
		actor:   opts.Actor,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	if opts.Now != nil {
		c.now = opts.Now
	}

	ds, err := seed.Load()
	if err != nil {
		return nil, err
	}
	targets := map[string]any{
		KeyEntries:       &c.entries,
		KeyCategories:    &c.tax.Categories,
		KeySubCategories: &c.tax.SubCategories,
		KeySubjects:      &c.tax.Subjects,
		KeyTags:          &c.tax.Tags,
		KeyContentTypes:  &c.tax.ContentTypes,
		KeyRecentIDs:     &c.recent,
	}
	c.entries = ds.Entries
	c.tax = ds.Taxonomy
	c.recent = []string{}

	for _, key := range Keys {
		raw, ok, err := store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		if !ok {
			c.log.Debug().Str("key", key).Msg("using seed")
			continue
		}
		if err := json.Unmarshal(raw, targets[key]); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
	}
	return c, nil
}

// Close closes the underlying store.
func (c *Catalog) Close() error {
	return c.store.Close()
}

// Snapshots describes what is currently persisted.
func (c *Catalog) Snapshots(ctx context.Context) ([]kv.Record, error) {
	return c.store.List(ctx)
}

func (c *Catalog) newID() string {
	return ulid.MustNew(ulid.Timestamp(c.now()), c.entropy).String()
}

func newTaxonomyID() string {
	return uuid.NewString()
}

func (c *Catalog) collection(key string) any {
	switch key {
	case KeyEntries:
		return nonNil(c.entries)
	case KeyCategories:
		return nonNil(c.tax.Categories)
	case KeySubCategories:
		return nonNil(c.tax.SubCategories)
	case KeySubjects:
		return nonNil(c.tax.Subjects)
	case KeyTags:
		return nonNil(c.tax.Tags)
	case KeyContentTypes:
		return nonNil(c.tax.ContentTypes)
	case KeyRecentIDs:
		return nonNil(c.recent)
	}
	return nil
}

// persist writes the named collections in one atomic step. In-memory state
// is already applied when persist runs; a failed write leaves it in place.
func (c *Catalog) persist(ctx context.Context, keys ...string) error {
	values := make(map[string][]byte, len(keys))
	for _, key := range keys {
		v := c.collection(key)
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		values[key] = b
	}

	var err error
	if len(keys) == 1 {
		err = c.store.Put(ctx, keys[0], values[keys[0]])
	} else {
		err = c.store.PutMany(ctx, values)
	}
	if err != nil {
		c.log.Error().Stack().Err(err).Strs("keys", keys).Msg("snapshot write failed")
		return fmt.Errorf("failed to save: %w", err)
	}

	if e := c.log.Debug(); e.Enabled() {
		sorted := append([]string(nil), keys...)
		sort.Strings(sorted)
		size := 0
		for _, v := range values {
			size += len(v)
		}
		e.Strs("keys", sorted).Int("bytes", size).Msg("snapshot written")
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (c *Catalog) indexOf(id string) int {
	for i := range c.entries {
		if c.entries[i].ID == id {
			return i
		}
	}
	return -1
}
