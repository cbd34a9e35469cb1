package catalog

import (
	"context"
	"fmt"

	"github.com/rcliao/faq-catalog/internal/model"
	"github.com/rcliao/faq-catalog/internal/recent"
)

// Copy markers appended by Duplicate.
const (
	CopyCodeSuffix  = "-COPY"
	CopyTitleSuffix = " (Bản sao)"
)

// Create validates e, assigns an id if it has none, stamps creation fields
// and prepends it to the catalogue. It returns the stored form.
func (c *Catalog) Create(ctx context.Context, e model.Entry) (model.Entry, error) {
	if err := e.Validate(); err != nil {
		return model.Entry{}, err
	}
	if e.ID == "" {
		e.ID = c.newID()
	} else if c.indexOf(e.ID) >= 0 {
		return model.Entry{}, fmt.Errorf("%w: entry %s already exists", model.ErrInvalid, e.ID)
	}
	c.stampCreate(&e)
	c.stampModified(&e)

	c.entries = append([]model.Entry{e.Clone()}, c.entries...)
	c.log.Debug().Str("id", e.ID).Str("title", e.Title).Msg("entry created")
	return e, c.persist(ctx, KeyEntries)
}

// Update replaces the entry with the given id in place. The id and createdAt
// of the stored entry are kept. An unknown id is a no-op.
func (c *Catalog) Update(ctx context.Context, id string, e model.Entry) error {
	i := c.indexOf(id)
	if i < 0 {
		c.log.Debug().Str("id", id).Msg("update of unknown entry ignored")
		return nil
	}
	if err := e.Validate(); err != nil {
		return err
	}
	e.ID = id
	e.CreatedAt = c.entries[i].CreatedAt
	if e.CreatedBy == "" {
		e.CreatedBy = c.entries[i].CreatedBy
	}
	c.stampModified(&e)

	c.entries[i] = e.Clone()
	c.log.Debug().Str("id", id).Msg("entry updated")
	return c.persist(ctx, KeyEntries)
}

// Save commits a draft: an existing id is updated in place, anything else
// is created.
func (c *Catalog) Save(ctx context.Context, draft model.Entry) (model.Entry, error) {
	if draft.ID != "" && c.indexOf(draft.ID) >= 0 {
		if err := c.Update(ctx, draft.ID, draft); err != nil {
			return model.Entry{}, err
		}
		return c.Get(draft.ID)
	}
	return c.Create(ctx, draft)
}

// Remove deletes the entry and purges it from the recency list in one write.
// Confirmation is the caller's job.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	i := c.indexOf(id)
	inRecent := recent.Contains(c.recent, id)
	if i < 0 && !inRecent {
		c.log.Debug().Str("id", id).Msg("remove of unknown entry ignored")
		return nil
	}
	if i >= 0 {
		c.entries = append(c.entries[:i:i], c.entries[i+1:]...)
	}
	c.recent = recent.Purge(c.recent, id)
	c.log.Debug().Str("id", id).Msg("entry removed")
	return c.persist(ctx, KeyEntries, KeyRecentIDs)
}

// Duplicate returns a draft copy of e with a fresh id, copy markers on code
// and title and a new createdAt. The draft is not inserted; pass it to Save.
func (c *Catalog) Duplicate(e model.Entry) model.Entry {
	d := e.Clone()
	d.ID = c.newID()
	d.Code = e.Code + CopyCodeSuffix
	d.Title = e.Title + CopyTitleSuffix
	d.CreatedAt = c.now().UTC()
	return d
}

// DuplicateByID looks up id and returns a draft copy of it.
func (c *Catalog) DuplicateByID(id string) (model.Entry, error) {
	e, err := c.Get(id)
	if err != nil {
		return model.Entry{}, err
	}
	return c.Duplicate(e), nil
}

// ToggleFavorite flips the favourite flag and returns the new value. An
// unknown id is a no-op that reports false.
func (c *Catalog) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	i := c.indexOf(id)
	if i < 0 {
		return false, nil
	}
	c.entries[i].IsFavorite = !c.entries[i].IsFavorite
	return c.entries[i].IsFavorite, c.persist(ctx, KeyEntries)
}

// View returns the entry and moves it to the front of the recency list.
func (c *Catalog) View(ctx context.Context, id string) (model.Entry, error) {
	e, err := c.Get(id)
	if err != nil {
		return model.Entry{}, err
	}
	c.recent = recent.Touch(c.recent, id)
	return e, c.persist(ctx, KeyRecentIDs)
}

// Use records that an agent copied the entry's answer: the usage counter is
// incremented and the entry is touched on the recency list.
func (c *Catalog) Use(ctx context.Context, id string) (model.Entry, error) {
	i := c.indexOf(id)
	if i < 0 {
		return model.Entry{}, fmt.Errorf("entry %s: %w", id, model.ErrNotFound)
	}
	c.entries[i].UsageCount++
	c.recent = recent.Touch(c.recent, id)
	return c.entries[i].Clone(), c.persist(ctx, KeyEntries, KeyRecentIDs)
}

// SetStatus moves an entry through the workflow. Approving stamps approvedBy
// and approvedAt. An unknown id is a no-op.
func (c *Catalog) SetStatus(ctx context.Context, id string, s model.Status) error {
	if !s.Valid() {
		return fmt.Errorf("%w: unknown status %q", model.ErrInvalid, s)
	}
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	e := &c.entries[i]
	e.Status = s
	if s == model.StatusApproved {
		now := c.now().UTC()
		e.ApprovedBy = c.actor
		e.ApprovedAt = &now
	}
	c.stampModified(e)
	return c.persist(ctx, KeyEntries)
}

// Import prepends a batch of normalized entries in their given order.
// Entry.Tags holds tag names on input; they are resolved to ids, creating
// missing tags. Entries are not deduplicated against the catalogue, but ids
// that collide with an existing entry are re-minted.
func (c *Catalog) Import(ctx context.Context, batch []model.Entry) ([]model.Entry, error) {
	if len(batch) == 0 {
		return nil, nil
	}
	taken := make(map[string]bool, len(c.entries)+len(batch))
	for _, e := range c.entries {
		taken[e.ID] = true
	}

	tagsBefore := len(c.tax.Tags)
	stored := make([]model.Entry, len(batch))
	for i, e := range batch {
		e = e.Clone()
		if e.ID == "" || taken[e.ID] {
			e.ID = c.newID()
		}
		taken[e.ID] = true
		e.Tags = c.resolveTagNames(e.Tags)
		stored[i] = e
	}

	c.entries = append(stored, c.entries...)
	c.log.Info().Int("imported", len(stored)).Int("tags_created", len(c.tax.Tags)-tagsBefore).Msg("import applied")

	keys := []string{KeyEntries}
	if len(c.tax.Tags) != tagsBefore {
		keys = append(keys, KeyTags)
	}
	out := make([]model.Entry, len(stored))
	for i := range stored {
		out[i] = stored[i].Clone()
	}
	return out, c.persist(ctx, keys...)
}

// ReplaceAll swaps the whole entry list, as the bulk table's save does.
func (c *Catalog) ReplaceAll(ctx context.Context, entries []model.Entry) error {
	next := make([]model.Entry, len(entries))
	for i, e := range entries {
		next[i] = e.Clone()
	}
	c.entries = next
	return c.persist(ctx, KeyEntries)
}

// Clear removes every entry and empties the recency list.
func (c *Catalog) Clear(ctx context.Context) error {
	c.entries = []model.Entry{}
	c.recent = []string{}
	return c.persist(ctx, KeyEntries, KeyRecentIDs)
}

func (c *Catalog) stampCreate(e *model.Entry) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = c.now().UTC()
	}
	if e.CreatedBy == "" {
		e.CreatedBy = c.actor
	}
	if e.Type == "" {
		e.Type = model.DefaultEntryType
	}
	if e.Status == "" {
		e.Status = model.StatusPending
	}
}

func (c *Catalog) stampModified(e *model.Entry) {
	now := c.now().UTC()
	e.LastModifiedAt = &now
	e.LastModifiedBy = c.actor
}
