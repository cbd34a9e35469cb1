package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/rcliao/faq-catalog/internal/catalog"
	"github.com/rcliao/faq-catalog/internal/model"
)

// stringFields maps flag names to the string field they set.
var stringFields = []struct {
	flag, usage string
	field       func(e *model.Entry) *string
}{
	{"code", "Internal code", func(e *model.Entry) *string { return &e.Code }},
	{"type", "Content type", func(e *model.Entry) *string { return &e.Type }},
	{"category", "Category", func(e *model.Entry) *string { return &e.Category }},
	{"subcategory", "Sub-category", func(e *model.Entry) *string { return &e.SubCategory }},
	{"title", "Title (required)", func(e *model.Entry) *string { return &e.Title }},
	{"question", "Question as customers ask it", func(e *model.Entry) *string { return &e.Question }},
	{"answer", "Answer text (required)", func(e *model.Entry) *string { return &e.Answer }},
	{"activation", "Activation condition", func(e *model.Entry) *string { return &e.ActivationCondition }},
	{"cta", "Default call to action", func(e *model.Entry) *string { return &e.CTADefault }},
	{"cta-alt", "Alternative call to action", func(e *model.Entry) *string { return &e.CTAAlternative }},
	{"file-url", "Attachment URL", func(e *model.Entry) *string { return &e.FileURL }},
	{"age-group", "Age group", func(e *model.Entry) *string { return &e.AgeGroup }},
	{"level", "Level", func(e *model.Entry) *string { return &e.Level }},
	{"target-parent", "Target parent", func(e *model.Entry) *string { return &e.TargetParent }},
	{"stage", "Consultation stage", func(e *model.Entry) *string { return &e.ConsultationStage }},
	{"note", "Internal note", func(e *model.Entry) *string { return &e.InternalNote }},
}

// listFields maps flag names to the comma-separated list field they set.
var listFields = []struct {
	flag, usage string
	field       func(e *model.Entry) *[]string
}{
	{"keywords", "Comma-separated keywords", func(e *model.Entry) *[]string { return &e.Keywords }},
	{"keywords-expanded", "Comma-separated expanded keywords", func(e *model.Entry) *[]string { return &e.KeywordsExpanded }},
	{"keywords-negative", "Comma-separated negative keywords", func(e *model.Entry) *[]string { return &e.KeywordsNegative }},
	{"subjects", "Comma-separated subjects", func(e *model.Entry) *[]string { return &e.Subjects }},
}

// addDraftFlags registers one flag per editable entry field.
func addDraftFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	for _, sf := range stringFields {
		f.String(sf.flag, "", sf.usage)
	}
	for _, lf := range listFields {
		f.String(lf.flag, "", lf.usage)
	}
	f.StringP("tags", "t", "", "Comma-separated tag names")
	f.StringSlice("toggle-tag", nil, "Add the tag if missing, remove it if present (repeatable)")
	f.Int("priority", 50, "Priority")
	f.Int("display-order", 1, "Display order")
	f.String("status", "", "Status: pending, approved, hidden, update_required")
	f.Bool("favorite", false, "Mark as favourite")
	f.String("from", "", "Read the entry from a JSON or YAML file")
}

// applyDraftFlags copies every flag the user set onto e. Unset flags leave
// the field alone so edit only touches what was asked for.
func applyDraftFlags(cmd *cobra.Command, cat *catalog.Catalog, e *model.Entry) error {
	f := cmd.Flags()
	for _, sf := range stringFields {
		if f.Changed(sf.flag) {
			v, _ := f.GetString(sf.flag)
			*sf.field(e) = v
		}
	}
	for _, lf := range listFields {
		if f.Changed(lf.flag) {
			*lf.field(e) = splitFlag(cmd, lf.flag)
		}
	}
	if f.Changed("tags") {
		ids, err := resolveTags(cat, splitFlag(cmd, "tags"))
		if err != nil {
			return err
		}
		e.Tags = ids
	}
	if f.Changed("toggle-tag") {
		names, _ := f.GetStringSlice("toggle-tag")
		ids, err := resolveTags(cat, names)
		if err != nil {
			return err
		}
		for _, id := range ids {
			e.Tags = model.Toggle(e.Tags, id)
		}
	}
	if f.Changed("priority") {
		e.Priority, _ = f.GetInt("priority")
	}
	if f.Changed("display-order") {
		e.DisplayOrder, _ = f.GetInt("display-order")
	}
	if f.Changed("status") {
		raw, _ := f.GetString("status")
		s, ok := model.ParseStatus(raw)
		if !ok {
			return fmt.Errorf("%w: unknown status %q", model.ErrInvalid, raw)
		}
		e.Status = s
	}
	if f.Changed("favorite") {
		e.IsFavorite, _ = f.GetBool("favorite")
	}
	return nil
}

// overlayDraftFile decodes the --from file, if any, over e. Fields absent
// from the file keep their value. Tags may be given as names or ids.
func overlayDraftFile(cmd *cobra.Command, cat *catalog.Catalog, e *model.Entry) error {
	path, _ := cmd.Flags().GetString("from")
	if path == "" {
		return nil
	}
	if err := readDraft(path, e); err != nil {
		return err
	}
	ids, err := resolveTags(cat, e.Tags)
	if err != nil {
		return err
	}
	e.Tags = ids
	return nil
}

// resolveTags maps tag names or ids to ids. Every value must name an
// existing tag.
func resolveTags(cat *catalog.Catalog, namesOrIDs []string) ([]string, error) {
	var unknown []string
	for _, v := range namesOrIDs {
		if len(cat.TagIDs([]string{v})) == 0 {
			unknown = append(unknown, v)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: unknown tag %s (create it with `tag add`)", model.ErrInvalid, strings.Join(unknown, ", "))
	}
	return cat.TagIDs(namesOrIDs), nil
}

func readDraft(path string, e *model.Entry) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read draft: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, e)
	default:
		err = json.Unmarshal(b, e)
	}
	if err != nil {
		return fmt.Errorf("%w: decode %s: %v", model.ErrInvalid, path, err)
	}
	return nil
}
