package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/faq-catalog/internal/catalog"
	"github.com/rcliao/faq-catalog/internal/model"
)

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "search"},
		Short:   "List and search entries",
		Long: `List entries matching a free-text query and category/tag filters.
Results are paginated: browse pages hold page_size.browse entries,
--table pages hold page_size.table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, _ := cmd.Flags().GetString("q")
			category, _ := cmd.Flags().GetString("category")
			tag, _ := cmd.Flags().GetString("tag")
			rawScope, _ := cmd.Flags().GetString("scope")
			page, _ := cmd.Flags().GetInt("page")
			table, _ := cmd.Flags().GetBool("table")
			size, _ := cmd.Flags().GetInt("page-size")

			scope, err := catalog.ParseScope(rawScope)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("page-size") {
				size = a.cfg.PageSize.Browse
				if table {
					size = a.cfg.PageSize.Table
				}
			}

			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				matches := cat.List(catalog.Filter{Query: q, Category: category, Tag: tag, Scope: scope})
				p := catalog.Paginate(matches, size, page)
				for i, e := range p.Items {
					p.Items[i] = cat.WithTagNames(e)
				}
				a.log.Debug().Int("matches", p.Total).Int("page", p.Number).Msg("list")
				return a.render(cmd, p, func(w io.Writer) error {
					return pageText(w, p, a)
				})
			})
		},
	}

	cmd.Flags().StringP("q", "q", "", "Search title, question and keywords")
	cmd.Flags().StringP("category", "c", catalog.Any, "Filter by category")
	cmd.Flags().StringP("tag", "t", catalog.Any, "Filter by tag name or id")
	cmd.Flags().StringP("scope", "s", string(catalog.ScopeAll), "Scope: all, favorites, recent")
	cmd.Flags().IntP("page", "p", 1, "Page number (1-based)")
	cmd.Flags().Bool("table", false, "Use the table page size")
	cmd.Flags().Int("page-size", 0, "Override the page size (0 lists every match on one page)")
	return cmd
}

func pageText(w io.Writer, p catalog.Page, a *app) error {
	if p.Total == 0 {
		_, err := fmt.Fprintln(w, "no entries")
		return err
	}
	if err := entryLines(w, p.Items, a.now()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d/%d (%d entries)\n", p.Number, max(p.TotalPages, 1), p.Total)
	return err
}

func newRecentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show recently viewed entries, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				entries := cat.List(catalog.Filter{Scope: catalog.ScopeRecent})
				for i, e := range entries {
					entries[i] = cat.WithTagNames(e)
				}
				return a.render(cmd, entries, func(w io.Writer) error {
					return entryLines(w, entries, a.now())
				})
			})
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an entry",
		Long:  "Show an entry and move it to the front of the recent list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noTrack, _ := cmd.Flags().GetBool("no-track")
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				var (
					e   model.Entry
					err error
				)
				if noTrack {
					e, err = cat.Get(args[0])
				} else {
					e, err = cat.View(cmd.Context(), args[0])
				}
				if err != nil {
					return err
				}
				return a.renderEntry(cmd, cat, e)
			})
		},
	}
	cmd.Flags().Bool("no-track", false, "Do not record the view in the recent list")
	return cmd
}
