package catalog

import (
	"fmt"
	"strings"

	"github.com/rcliao/faq-catalog/internal/model"
)

// Scope selects the base set a list query starts from.
type Scope string

const (
	ScopeAll       Scope = "all"
	ScopeFavorites Scope = "favorites"
	ScopeRecent    Scope = "recent"
)

// ParseScope accepts "all", "favorites" or "recent". Empty means all.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeFavorites, "favorite", "favoritesonly":
		return ScopeFavorites, nil
	case ScopeRecent, "recentonly":
		return ScopeRecent, nil
	}
	return "", fmt.Errorf("%w: unknown scope %q", model.ErrInvalid, s)
}

// Any disables the category or tag filter.
const Any = "all"

// Filter selects entries for List.
type Filter struct {
	// Query is matched case-insensitively as a substring of the title, the
	// question or any keyword.
	Query string
	// Category must equal the entry's category exactly. "" or Any disables it.
	Category string
	// Tag is a tag name or id the entry must carry. "" or Any disables it.
	Tag   string
	Scope Scope
}

// List returns copies of the entries matching f. Scope all and favorites keep
// catalogue order; scope recent follows recency order and skips ids that no
// longer resolve.
func (c *Catalog) List(f Filter) []model.Entry {
	var base []*model.Entry
	switch f.Scope {
	case ScopeRecent:
		for _, id := range c.recent {
			if i := c.indexOf(id); i >= 0 {
				base = append(base, &c.entries[i])
			}
		}
	default:
		for i := range c.entries {
			if f.Scope == ScopeFavorites && !c.entries[i].IsFavorite {
				continue
			}
			base = append(base, &c.entries[i])
		}
	}

	q := strings.ToLower(f.Query)
	tagID := ""
	if f.Tag != "" && f.Tag != Any {
		tagID = f.Tag
		if t, ok := c.findTag(f.Tag); ok {
			tagID = t.ID
		}
	}

	out := make([]model.Entry, 0, len(base))
	for _, e := range base {
		if q != "" && !matchesQuery(e, q) {
			continue
		}
		if f.Category != "" && f.Category != Any && e.Category != f.Category {
			continue
		}
		if tagID != "" && !e.HasTag(tagID) {
			continue
		}
		out = append(out, e.Clone())
	}
	return out
}

func matchesQuery(e *model.Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Question), q) {
		return true
	}
	for _, k := range e.Keywords {
		if strings.Contains(strings.ToLower(k), q) {
			return true
		}
	}
	return false
}

// Get returns a copy of the entry with the given id.
func (c *Catalog) Get(id string) (model.Entry, error) {
	i := c.indexOf(id)
	if i < 0 {
		return model.Entry{}, fmt.Errorf("entry %s: %w", id, model.ErrNotFound)
	}
	return c.entries[i].Clone(), nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Recent returns the recency list, most recent first.
func (c *Catalog) Recent() []string {
	return append([]string(nil), c.recent...)
}

// Page is one slice of a result list.
type Page struct {
	Items      []model.Entry `json:"items"`
	Number     int           `json:"page"`
	Size       int           `json:"page_size"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// Paginate returns page number (1-based) of entries split into pages of size.
// Pages past the end are empty rather than an error. Non-positive numbers are
// treated as page 1 and non-positive sizes return everything on one page.
func Paginate(entries []model.Entry, size, number int) Page {
	total := len(entries)
	if size <= 0 {
		size = total
		if size == 0 {
			size = 1
		}
	}
	if number < 1 {
		number = 1
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	p := Page{
		Items:      []model.Entry{},
		Number:     number,
		Size:       size,
		Total:      total,
		TotalPages: pages,
	}

	// number-1 < pages keeps (number-1)*size below total.
	if number-1 >= pages {
		return p
	}
	start := (number - 1) * size
	end := start + min(size, total-start)
	p.Items = entries[start:end]
	return p
}
