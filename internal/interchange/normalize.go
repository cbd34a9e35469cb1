// Package interchange maps catalogue entries to and from spreadsheet rows.
// Imported rows are loosely typed; Normalize turns each into a complete
// entry and never fails.
package interchange

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/faq-catalog/internal/model"
	"github.com/rcliao/faq-catalog/internal/sheet"
)

// Defaults applied to absent or invalid cells.
const (
	PlaceholderCode     = "CODE-NEW"
	PlaceholderCategory = "Chưa phân loại"
	PlaceholderTitle    = "Tiêu đề trống"
	DefaultSubject      = "Tất cả"
	DefaultAgeGroup     = "3-15"
	DefaultLevel        = "Cơ bản"
	DefaultTargetParent = "Tất cả"
	DefaultPriority     = 50
	DefaultDisplayOrder = 1
	// ImportedBy marks entries that came from a spreadsheet.
	ImportedBy = "Excel-Import"
)

// Normalizer converts rows to entries.
type Normalizer struct {
	Now   func() time.Time
	NewID func() string
}

// NewNormalizer returns a Normalizer that mints ULIDs and uses the wall clock.
func NewNormalizer() *Normalizer {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return &Normalizer{
		Now: time.Now,
		NewID: func() string {
			return ulid.MustNew(ulid.Now(), entropy).String()
		},
	}
}

// cells gives case-insensitive access to a row. Values are kept as read;
// free text keeps its surrounding whitespace.
type cells map[string]string

func newCells(row sheet.Row) cells {
	c := make(cells, len(row))
	for k, v := range row {
		c[strings.ToLower(strings.TrimSpace(k))] = sheet.Text(v)
	}
	return c
}

// str returns the raw cell text, or def when the cell is blank.
func (c cells) str(key, def string) string {
	if v := c[strings.ToLower(key)]; strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

// token returns the trimmed cell text, or def when the cell is blank.
func (c cells) token(key, def string) string {
	if v := strings.TrimSpace(c[strings.ToLower(key)]); v != "" {
		return v
	}
	return def
}

func (c cells) list(key string) []string {
	v := model.SplitList(c[strings.ToLower(key)])
	if v == nil {
		return []string{}
	}
	return v
}

func (c cells) number(key string, def int) int {
	v := c.token(key, "")
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return def
}

// Normalize maps a row onto an entry, applying a default to every absent or
// unparseable field. Tags holds the row's tag names; the catalogue resolves
// them to ids on import. createdAt is always the import time.
func (n *Normalizer) Normalize(row sheet.Row) model.Entry {
	c := newCells(row)

	status, ok := model.ParseStatus(c.token("status", ""))
	if !ok {
		status = model.StatusPending
	}

	subjects := c.list("subjects")
	if len(subjects) == 0 {
		subjects = []string{c.token("subject", DefaultSubject)}
	}

	id := c.token("id", "")
	if id == "" {
		id = n.NewID()
	}

	return model.Entry{
		ID:                  id,
		Code:                c.str("code", PlaceholderCode),
		Type:                c.str("type", model.DefaultEntryType),
		Category:            c.str("category", PlaceholderCategory),
		SubCategory:         c.str("subCategory", ""),
		Title:               c.str("title", PlaceholderTitle),
		Question:            c.str("question", ""),
		Answer:              c.str("answer", ""),
		ActivationCondition: c.str("activationCondition", ""),
		CTADefault:          c.str("ctaDefault", ""),
		CTAAlternative:      c.str("ctaAlternative", ""),
		FileURL:             c.str("fileUrl", ""),
		Keywords:            c.list("keywords"),
		KeywordsExpanded:    c.list("keywordsExpanded"),
		KeywordsNegative:    c.list("keywordsNegative"),
		Subjects:            subjects,
		AgeGroup:            c.str("ageGroup", DefaultAgeGroup),
		Level:               c.str("level", DefaultLevel),
		TargetParent:        c.str("targetParent", DefaultTargetParent),
		ConsultationStage:   c.str("consultationStage", ""),
		Priority:            c.number("priority", DefaultPriority),
		DisplayOrder:        c.number("displayOrder", DefaultDisplayOrder),
		Status:              status,
		CreatedBy:           ImportedBy,
		CreatedAt:           n.Now().UTC(),
		InternalNote:        c.str("internalNote", ""),
		Tags:                c.list("tags"),
	}
}
