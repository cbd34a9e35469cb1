package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/faq-catalog/internal/catalog"
	"github.com/rcliao/faq-catalog/internal/model"
)

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an entry",
		Long: `Create an entry from flags, a JSON/YAML file (--from), or both; flags win.
Title and answer are required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				e := model.Entry{Priority: 50, DisplayOrder: 1}
				if err := overlayDraftFile(cmd, cat, &e); err != nil {
					return err
				}
				if err := applyDraftFlags(cmd, cat, &e); err != nil {
					return err
				}
				stored, err := cat.Create(cmd.Context(), e)
				if err != nil {
					return err
				}
				return a.renderEntry(cmd, cat, stored)
			})
		},
	}
	addDraftFlags(cmd)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of an entry",
		Long:  "Update an entry. Only the flags given (and fields present in --from) change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				e, err := cat.Get(args[0])
				if err != nil {
					return err
				}
				if err := overlayDraftFile(cmd, cat, &e); err != nil {
					return err
				}
				if err := applyDraftFlags(cmd, cat, &e); err != nil {
					return err
				}
				if err := cat.Update(cmd.Context(), args[0], e); err != nil {
					return err
				}
				stored, err := cat.Get(args[0])
				if err != nil {
					return err
				}
				return a.renderEntry(cmd, cat, stored)
			})
		},
	}
	addDraftFlags(cmd)
	return cmd
}

func newDupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dup <id>",
		Short: "Copy an entry as a new draft",
		Long: `Copy an entry with a fresh id and copy markers on code and title.
The copy is only printed unless --save is given; flags adjust the copy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				draft, err := cat.DuplicateByID(args[0])
				if err != nil {
					return err
				}
				if err := applyDraftFlags(cmd, cat, &draft); err != nil {
					return err
				}
				if save, _ := cmd.Flags().GetBool("save"); save {
					if draft, err = cat.Save(cmd.Context(), draft); err != nil {
						return err
					}
				}
				return a.renderEntry(cmd, cat, draft)
			})
		},
	}
	addDraftFlags(cmd)
	cmd.Flags().Bool("save", false, "Insert the copy into the catalogue")
	return cmd
}

// renderEntry prints one entry with tag names resolved.
func (a *app) renderEntry(cmd *cobra.Command, cat *catalog.Catalog, e model.Entry) error {
	named := cat.WithTagNames(e)
	return a.render(cmd, named, func(w io.Writer) error {
		return entryDetail(w, named, a.now())
	})
}
