package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/faq-catalog/internal/catalog"
	"github.com/rcliao/faq-catalog/internal/model"
)

func newRmCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				e, err := cat.Get(args[0])
				if err != nil {
					return err
				}
				if !yes && !confirm(cmd, fmt.Sprintf("Delete %q?", e.Title)) {
					return a.render(cmd, map[string]any{"deleted": false, "id": e.ID}, func(w io.Writer) error {
						_, err := fmt.Fprintln(w, "cancelled")
						return err
					})
				}
				if err := cat.Remove(cmd.Context(), e.ID); err != nil {
					return err
				}
				return a.ack(cmd, "deleted "+e.ID, map[string]any{"deleted": true, "id": e.ID})
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newFavCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fav <id>",
		Short: "Toggle the favourite flag of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				if _, err := cat.Get(args[0]); err != nil {
					return err
				}
				fav, err := cat.ToggleFavorite(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				state := "removed from"
				if fav {
					state = "added to"
				}
				return a.ack(cmd, fmt.Sprintf("%s %s favourites", args[0], state), map[string]any{"id": args[0], "isFavorite": fav})
			})
		},
	}
}

func newUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Print an answer and count the use",
		Long: `Print the answer of an entry, increment its usage counter and move it to
the front of the recent list. The text format prints the bare answer so it can
be piped to a clipboard tool.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				e, err := cat.Use(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.render(cmd, map[string]any{"id": e.ID, "answer": e.Answer, "usageCount": e.UsageCount}, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, e.Answer)
					return err
				})
			})
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an entry through the review workflow",
		Long: `Set the status of an entry: pending, approved, hidden or update_required.
The Vietnamese labels used in spreadsheets are accepted too. Approving records
who approved and when.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := model.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("%w: unknown status %q", model.ErrInvalid, args[1])
			}
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				if _, err := cat.Get(args[0]); err != nil {
					return err
				}
				if err := cat.SetStatus(cmd.Context(), args[0], s); err != nil {
					return err
				}
				e, err := cat.Get(args[0])
				if err != nil {
					return err
				}
				return a.renderEntry(cmd, cat, e)
			})
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry",
		Long:  "Delete every entry and the recent list. Taxonomies are kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				n := cat.Len()
				if !yes && !confirm(cmd, fmt.Sprintf("Delete all %d entries?", n)) {
					return a.render(cmd, map[string]any{"deleted": 0}, func(w io.Writer) error {
						_, err := fmt.Fprintln(w, "cancelled")
						return err
					})
				}
				if err := cat.Clear(cmd.Context()); err != nil {
					return err
				}
				return a.ack(cmd, fmt.Sprintf("deleted %d entries", n), map[string]any{"deleted": n})
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
