// Package model defines the knowledge catalogue data types.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one knowledge-base record: a canned question/answer plus the
// metadata support agents use to find and rank it.
type Entry struct {
	ID          string `json:"id" yaml:"id"`
	Code        string `json:"code" yaml:"code"`
	Type        string `json:"type" yaml:"type"`
	Category    string `json:"category" yaml:"category"`
	SubCategory string `json:"subCategory" yaml:"subCategory"`

	Title               string `json:"title" yaml:"title"`
	Question            string `json:"question" yaml:"question"`
	Answer              string `json:"answer" yaml:"answer"`
	ActivationCondition string `json:"activationCondition,omitempty" yaml:"activationCondition,omitempty"`
	CTADefault          string `json:"ctaDefault" yaml:"ctaDefault"`
	CTAAlternative      string `json:"ctaAlternative,omitempty" yaml:"ctaAlternative,omitempty"`
	FileURL             string `json:"fileUrl,omitempty" yaml:"fileUrl,omitempty"`

	Keywords         []string `json:"keywords" yaml:"keywords"`
	KeywordsExpanded []string `json:"keywordsExpanded" yaml:"keywordsExpanded"`
	KeywordsNegative []string `json:"keywordsNegative" yaml:"keywordsNegative"`

	Subjects          []string `json:"subjects" yaml:"subjects"`
	AgeGroup          string   `json:"ageGroup" yaml:"ageGroup"`
	Level             string   `json:"level" yaml:"level"`
	TargetParent      string   `json:"targetParent" yaml:"targetParent"`
	ConsultationStage string   `json:"consultationStage" yaml:"consultationStage"`

	// Priority is opaque display data. No ordering direction is implied.
	Priority     int    `json:"priority" yaml:"priority"`
	DisplayOrder int    `json:"displayOrder" yaml:"displayOrder"`
	Status       Status `json:"status" yaml:"status"`

	CreatedBy      string     `json:"createdBy" yaml:"createdBy"`
	CreatedAt      time.Time  `json:"createdAt" yaml:"createdAt"`
	ApprovedBy     string     `json:"approvedBy,omitempty" yaml:"approvedBy,omitempty"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty" yaml:"approvedAt,omitempty"`
	LastModifiedBy string     `json:"lastModifiedBy,omitempty" yaml:"lastModifiedBy,omitempty"`
	LastModifiedAt *time.Time `json:"lastModifiedAt,omitempty" yaml:"lastModifiedAt,omitempty"`

	UsageCount          int     `json:"usageCount" yaml:"usageCount"`
	EffectivenessRating float64 `json:"effectivenessRating" yaml:"effectivenessRating"`
	InternalNote        string  `json:"internalNote,omitempty" yaml:"internalNote,omitempty"`
	IsFavorite          bool    `json:"isFavorite,omitempty" yaml:"isFavorite,omitempty"`

	// Tags holds tag ids. Names are resolved against the tag taxonomy.
	Tags []string `json:"tags" yaml:"tags"`
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	c := e
	c.Keywords = cloneStrings(e.Keywords)
	c.KeywordsExpanded = cloneStrings(e.KeywordsExpanded)
	c.KeywordsNegative = cloneStrings(e.KeywordsNegative)
	c.Subjects = cloneStrings(e.Subjects)
	c.Tags = cloneStrings(e.Tags)
	if e.ApprovedAt != nil {
		t := *e.ApprovedAt
		c.ApprovedAt = &t
	}
	if e.LastModifiedAt != nil {
		t := *e.LastModifiedAt
		c.LastModifiedAt = &t
	}
	return c
}

// Validate reports whether e can be saved. Title and answer are required;
// everything else is advisory.
func (e Entry) Validate() error {
	var missing []string
	if strings.TrimSpace(e.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(e.Answer) == "" {
		missing = append(missing, "answer")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalid, strings.Join(missing, ", "))
	}
	return nil
}

// HasTag reports whether the entry references tag id.
func (e Entry) HasTag(id string) bool {
	for _, t := range e.Tags {
		if t == id {
			return true
		}
	}
	return false
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
