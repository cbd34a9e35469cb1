package catalog

import "github.com/rcliao/faq-catalog/internal/model"

// Count is one bucket of a breakdown.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats summarises the catalogue for the dashboard.
type Stats struct {
	Total      int     `json:"total"`
	Favorites  int     `json:"favorites"`
	Recent     int     `json:"recent"`
	TotalUsage int     `json:"total_usage"`
	ByType     []Count `json:"by_type"`
	ByCategory []Count `json:"by_category"`
	ByStatus   []Count `json:"by_status"`
}

// Stats counts entries by type, category and status. Every configured
// content type and status appears, with zero counts included; other values
// seen on entries follow in first-seen order.
func (c *Catalog) Stats() Stats {
	st := Stats{Total: len(c.entries), Recent: len(c.recent)}

	byType := newCounter(c.tax.ContentTypes)
	byCategory := newCounter(nil)
	statuses := make([]string, len(model.Statuses))
	for i, s := range model.Statuses {
		statuses[i] = s.Label()
	}
	byStatus := newCounter(statuses)

	for _, e := range c.entries {
		if e.IsFavorite {
			st.Favorites++
		}
		st.TotalUsage += e.UsageCount
		byType.add(e.Type)
		byCategory.add(e.Category)
		byStatus.add(e.Status.Label())
	}

	st.ByType = byType.counts()
	st.ByCategory = byCategory.counts()
	st.ByStatus = byStatus.counts()
	return st
}

type counter struct {
	order []string
	n     map[string]int
}

func newCounter(names []string) *counter {
	c := &counter{n: map[string]int{}}
	for _, name := range names {
		if _, ok := c.n[name]; !ok {
			c.order = append(c.order, name)
			c.n[name] = 0
		}
	}
	return c
}

func (c *counter) add(name string) {
	if _, ok := c.n[name]; !ok {
		c.order = append(c.order, name)
	}
	c.n[name]++
}

func (c *counter) counts() []Count {
	out := make([]Count, len(c.order))
	for i, name := range c.order {
		out[i] = Count{Name: name, Count: c.n[name]}
	}
	return out
}
