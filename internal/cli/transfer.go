package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/rcliao/faq-catalog/internal/catalog"
	"github.com/rcliao/faq-catalog/internal/interchange"
	"github.com/rcliao/faq-catalog/internal/model"
	"github.com/rcliao/faq-catalog/internal/sheet"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import entries from a spreadsheet",
		Long: `Import every row of an XLSX, CSV or JSON file as a new entry. Headers match
the export columns case-insensitively; missing cells get defaults. Imported
entries land at the top of the catalogue in file order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				im := &interchange.Importer{Normalizer: interchange.NewNormalizer(), Sink: cat}
				rep, err := im.ImportFile(cmd.Context(), args[0])
				a.log.Info().Str("file", args[0]).Int("imported", len(rep.Imported)).Msg("import finished")
				for i, e := range rep.Imported {
					rep.Imported[i] = cat.WithTagNames(e)
				}
				if rerr := a.render(cmd, rep, func(w io.Writer) error {
					for _, l := range rep.Log {
						fmt.Fprintf(w, "[%s] %s\n", l.Level, l.Message)
					}
					return nil
				}); rerr != nil {
					return rerr
				}
				return err
			})
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export entries to a spreadsheet",
		Long: `Write the entries to an XLSX, CSV or JSON file, picked by extension.
Filters work like list. Without a file name, FAQ_Export_<date>.xlsx is written
in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "FAQ_Export_" + a.now().Format("2006-01-02") + ".xlsx"
			if len(args) == 1 {
				path = args[0]
			}
			q, _ := cmd.Flags().GetString("q")
			category, _ := cmd.Flags().GetString("category")
			tag, _ := cmd.Flags().GetString("tag")
			rawScope, _ := cmd.Flags().GetString("scope")
			scope, err := catalog.ParseScope(rawScope)
			if err != nil {
				return err
			}

			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				entries := cat.List(catalog.Filter{Query: q, Category: category, Tag: tag, Scope: scope})
				for i, e := range entries {
					entries[i] = cat.WithTagNames(e)
				}
				if err := sheet.WriteFile(path, interchange.ExportTable(entries)); err != nil {
					return err
				}
				a.log.Info().Str("file", path).Int("entries", len(entries)).Msg("export written")
				return a.render(cmd, map[string]any{"file": path, "exported": len(entries)}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "exported %d entries to %s\n", len(entries), path)
					return err
				})
			})
		},
	}
	cmd.Flags().StringP("q", "q", "", "Search title, question and keywords")
	cmd.Flags().StringP("category", "c", catalog.Any, "Filter by category")
	cmd.Flags().StringP("tag", "t", catalog.Any, "Filter by tag name or id")
	cmd.Flags().StringP("scope", "s", string(catalog.ScopeAll), "Scope: all, favorites, recent")
	return cmd
}

func newTemplateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "template [file]",
		Short: "Write an empty import template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "FAQ_Template.xlsx"
			if len(args) == 1 {
				path = args[0]
			}
			if err := sheet.WriteFile(path, interchange.TemplateTable()); err != nil {
				return err
			}
			return a.render(cmd, map[string]any{"file": path, "columns": interchange.TemplateColumns}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "template written to %s\n", path)
				return err
			})
		},
	}
}

func newReplaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace <file>",
		Short: "Replace every entry from a JSON or YAML list",
		Long: `Replace the whole entry list with the entries in a JSON or YAML file, the
bulk-edit round trip of "list --format yaml --page-size 0". Tags may be names
or ids and must exist. Every entry must have a title and an answer. A single
list page that does not hold every entry is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			entries, err := readEntries(args[0])
			if err != nil {
				return err
			}
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				seen := map[string]bool{}
				for i := range entries {
					if err := entries[i].Validate(); err != nil {
						return fmt.Errorf("entry %d: %w", i+1, err)
					}
					if entries[i].ID == "" || seen[entries[i].ID] {
						return fmt.Errorf("%w: entry %d needs a unique id", model.ErrInvalid, i+1)
					}
					seen[entries[i].ID] = true
					ids, err := resolveTags(cat, entries[i].Tags)
					if err != nil {
						return fmt.Errorf("entry %d: %w", i+1, err)
					}
					entries[i].Tags = ids
				}
				if !yes && !confirm(cmd, fmt.Sprintf("Replace %d entries with %d?", cat.Len(), len(entries))) {
					return a.render(cmd, map[string]any{"replaced": false}, nil)
				}
				if err := cat.ReplaceAll(cmd.Context(), entries); err != nil {
					return err
				}
				return a.ack(cmd, fmt.Sprintf("catalogue now holds %d entries", len(entries)),
					map[string]any{"replaced": true, "entries": len(entries)})
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// readEntries decodes a bare list of entries, or a list page written by
// "list" (an object with an items field). A page must hold all matches.
func readEntries(path string) ([]model.Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	var (
		list []model.Entry
		page struct {
			Items []model.Entry `json:"items" yaml:"items"`
			Total int           `json:"total" yaml:"total"`
		}
	)
	decode := json.Unmarshal
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decode = yaml.Unmarshal
	}
	if err := decode(b, &list); err == nil {
		return list, nil
	}
	if err := decode(b, &page); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", model.ErrInvalid, path, err)
	}
	if page.Total != len(page.Items) {
		return nil, fmt.Errorf("%w: %s holds %d of %d entries (write it with `list --page-size 0`)",
			model.ErrInvalid, path, len(page.Items), page.Total)
	}
	return page.Items, nil
}
