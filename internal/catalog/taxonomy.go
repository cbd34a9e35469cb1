package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/faq-catalog/internal/model"
)

// List names for the plain string taxonomies.
const (
	ListSubCategories = KeySubCategories
	ListSubjects      = KeySubjects
	ListContentTypes  = KeyContentTypes
)

// Taxonomy returns a copy of every label set.
func (c *Catalog) Taxonomy() model.Taxonomy {
	return model.Taxonomy{
		Categories:    append([]model.Category{}, c.tax.Categories...),
		SubCategories: append([]string{}, c.tax.SubCategories...),
		Subjects:      append([]string{}, c.tax.Subjects...),
		Tags:          append([]model.Tag{}, c.tax.Tags...),
		ContentTypes:  append([]string{}, c.tax.ContentTypes...),
	}
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", model.ErrInvalid)
	}
	return name, nil
}

// AddCategory appends a category with a fresh id.
func (c *Catalog) AddCategory(ctx context.Context, name string) (model.Category, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.Category{}, err
	}
	for _, cat := range c.tax.Categories {
		if cat.Name == name {
			return model.Category{}, fmt.Errorf("%w: category %q already exists", model.ErrInvalid, name)
		}
	}
	cat := model.Category{ID: newTaxonomyID(), Name: name}
	c.tax.Categories = append(c.tax.Categories, cat)
	return cat, c.persist(ctx, KeyCategories)
}

// RemoveCategory removes a category by id or name. Entries keep their
// category label. An unknown category is a no-op.
func (c *Catalog) RemoveCategory(ctx context.Context, idOrName string) error {
	for i, cat := range c.tax.Categories {
		if cat.ID == idOrName || cat.Name == idOrName {
			c.tax.Categories = append(c.tax.Categories[:i:i], c.tax.Categories[i+1:]...)
			return c.persist(ctx, KeyCategories)
		}
	}
	return nil
}

func (c *Catalog) stringList(list string) (*[]string, error) {
	switch list {
	case ListSubCategories:
		return &c.tax.SubCategories, nil
	case ListSubjects:
		return &c.tax.Subjects, nil
	case ListContentTypes:
		return &c.tax.ContentTypes, nil
	}
	return nil, fmt.Errorf("%w: unknown list %q", model.ErrInvalid, list)
}

// AddName appends name to one of the plain string lists (subCategories,
// subjects, contentTypes).
func (c *Catalog) AddName(ctx context.Context, list, name string) error {
	l, err := c.stringList(list)
	if err != nil {
		return err
	}
	name, err = cleanName(name)
	if err != nil {
		return err
	}
	for _, v := range *l {
		if v == name {
			return fmt.Errorf("%w: %q already in %s", model.ErrInvalid, name, list)
		}
	}
	*l = append(*l, name)
	return c.persist(ctx, list)
}

// RemoveName removes name from one of the plain string lists. Entries that
// use it keep the label.
func (c *Catalog) RemoveName(ctx context.Context, list, name string) error {
	l, err := c.stringList(list)
	if err != nil {
		return err
	}
	next := model.Remove(*l, name)
	if len(next) == len(*l) {
		return nil
	}
	*l = next
	return c.persist(ctx, list)
}

// AddTag creates a tag. An empty color gets model.DefaultTagColor.
func (c *Catalog) AddTag(ctx context.Context, name, color string) (model.Tag, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.Tag{}, err
	}
	if _, ok := c.findTag(name); ok {
		return model.Tag{}, fmt.Errorf("%w: tag %q already exists", model.ErrInvalid, name)
	}
	t := c.appendTag(name, color)
	return t, c.persist(ctx, KeyTags)
}

// RenameTag changes a tag's display name. Entries reference the id, so none
// of them need rewriting.
func (c *Catalog) RenameTag(ctx context.Context, idOrName, name string) (model.Tag, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.Tag{}, err
	}
	i := c.tagIndex(idOrName)
	if i < 0 {
		return model.Tag{}, fmt.Errorf("tag %s: %w", idOrName, model.ErrNotFound)
	}
	if other, ok := c.findTag(name); ok && other.ID != c.tax.Tags[i].ID {
		return model.Tag{}, fmt.Errorf("%w: tag %q already exists", model.ErrInvalid, name)
	}
	c.tax.Tags[i].Name = name
	return c.tax.Tags[i], c.persist(ctx, KeyTags)
}

// RemoveTag deletes a tag and strips its id from every entry.
func (c *Catalog) RemoveTag(ctx context.Context, idOrName string) error {
	i := c.tagIndex(idOrName)
	if i < 0 {
		return nil
	}
	id := c.tax.Tags[i].ID
	c.tax.Tags = append(c.tax.Tags[:i:i], c.tax.Tags[i+1:]...)

	keys := []string{KeyTags}
	touched := 0
	for j := range c.entries {
		if c.entries[j].HasTag(id) {
			c.entries[j].Tags = model.Remove(c.entries[j].Tags, id)
			touched++
		}
	}
	if touched > 0 {
		keys = append(keys, KeyEntries)
	}
	c.log.Debug().Str("tag", id).Int("entries", touched).Msg("tag removed")
	return c.persist(ctx, keys...)
}

// TagNames resolves an entry's tag ids to names, skipping unknown ids.
func (c *Catalog) TagNames(e model.Entry) []string {
	names := make([]string, 0, len(e.Tags))
	for _, id := range e.Tags {
		for _, t := range c.tax.Tags {
			if t.ID == id {
				names = append(names, t.Name)
				break
			}
		}
	}
	return names
}

// WithTagNames returns a copy of e whose Tags holds names instead of ids,
// the form used for display and spreadsheet export.
func (c *Catalog) WithTagNames(e model.Entry) model.Entry {
	out := e.Clone()
	out.Tags = c.TagNames(e)
	return out
}

// TagIDs resolves tag names or ids to ids, dropping unknown values.
func (c *Catalog) TagIDs(namesOrIDs []string) []string {
	var ids []string
	for _, v := range namesOrIDs {
		if t, ok := c.findTag(v); ok {
			ids = model.AddUnique(ids, t.ID)
		}
	}
	return ids
}

// resolveTagNames maps names to ids, creating tags that do not exist yet.
func (c *Catalog) resolveTagNames(names []string) []string {
	ids := []string{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		t, ok := c.findTag(n)
		if !ok {
			t = c.appendTag(n, "")
		}
		ids = model.AddUnique(ids, t.ID)
	}
	return ids
}

func (c *Catalog) appendTag(name, color string) model.Tag {
	if color == "" {
		color = model.DefaultTagColor
	}
	t := model.Tag{ID: newTaxonomyID(), Name: name, Color: color}
	c.tax.Tags = append(c.tax.Tags, t)
	return t
}

// findTag matches by id first, then by name.
func (c *Catalog) findTag(idOrName string) (model.Tag, bool) {
	if i := c.tagIndex(idOrName); i >= 0 {
		return c.tax.Tags[i], true
	}
	return model.Tag{}, false
}

func (c *Catalog) tagIndex(idOrName string) int {
	for i, t := range c.tax.Tags {
		if t.ID == idOrName {
			return i
		}
	}
	for i, t := range c.tax.Tags {
		if t.Name == idOrName {
			return i
		}
	}
	return -1
}
