package model

// DefaultEntryType is the content type assumed when none is given.
const DefaultEntryType = "FAQ"

// DefaultTagColor is assigned to tags created without an explicit colour.
const DefaultTagColor = "#6366f1"

// Category is a named entry category.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Tag is a coloured label. Entries reference tags by ID.
type Tag struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Taxonomy groups the label sets used to classify entries.
type Taxonomy struct {
	Categories    []Category `json:"categories" yaml:"categories"`
	SubCategories []string   `json:"subCategories" yaml:"subCategories"`
	Subjects      []string   `json:"subjects" yaml:"subjects"`
	Tags          []Tag      `json:"tags" yaml:"tags"`
	ContentTypes  []string   `json:"contentTypes" yaml:"contentTypes"`
}
