package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/faq-catalog/internal/catalog"
	"github.com/rcliao/faq-catalog/internal/model"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
					cats := cat.Taxonomy().Categories
					return a.render(cmd, cats, func(w io.Writer) error {
						for _, c := range cats {
							fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Name)
						}
						return nil
					})
				})
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a category",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
					c, err := cat.AddCategory(cmd.Context(), strings.Join(args, " "))
					if err != nil {
						return err
					}
					return a.render(cmd, c, func(w io.Writer) error {
						_, err := fmt.Fprintf(w, "added category %s (%s)\n", c.Name, c.ID)
						return err
					})
				})
			},
		},
		&cobra.Command{
			Use:   "rm <id|name>",
			Short: "Remove a category; entries keep their label",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := strings.Join(args, " ")
				return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
					if err := cat.RemoveCategory(cmd.Context(), name); err != nil {
						return err
					}
					return a.ack(cmd, "removed category "+name, map[string]any{"category": name})
				})
			},
		},
	)
	return cmd
}

// newNameListCmd manages one of the plain string lists.
func newNameListCmd(a *app, use, list, label string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: "Manage " + strings.ToLower(label) + " labels",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List " + strings.ToLower(label) + " labels",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
					names := namesOf(cat.Taxonomy(), list)
					return a.render(cmd, names, func(w io.Writer) error {
						for _, n := range names {
							fmt.Fprintln(w, n)
						}
						return nil
					})
				})
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a " + strings.ToLower(label) + " label",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := strings.Join(args, " ")
				return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
					if err := cat.AddName(cmd.Context(), list, name); err != nil {
						return err
					}
					return a.ack(cmd, "added "+name, map[string]any{"list": list, "name": name})
				})
			},
		},
		&cobra.Command{
			Use:   "rm <name>",
			Short: "Remove a " + strings.ToLower(label) + " label",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := strings.Join(args, " ")
				return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
					if err := cat.RemoveName(cmd.Context(), list, name); err != nil {
						return err
					}
					return a.ack(cmd, "removed "+name, map[string]any{"list": list, "name": name})
				})
			},
		},
	)
	return cmd
}

func namesOf(tax model.Taxonomy, list string) []string {
	switch list {
	case catalog.ListSubCategories:
		return tax.SubCategories
	case catalog.ListSubjects:
		return tax.Subjects
	case catalog.ListContentTypes:
		return tax.ContentTypes
	}
	return nil
}

func newTagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			color, _ := cmd.Flags().GetString("color")
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				t, err := cat.AddTag(cmd.Context(), strings.Join(args, " "), color)
				if err != nil {
					return err
				}
				return a.render(cmd, t, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "added tag %s (%s)\n", t.Name, t.ID)
					return err
				})
			})
		},
	}
	add.Flags().String("color", model.DefaultTagColor, "Display colour")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List tags",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
					tags := cat.Taxonomy().Tags
					return a.render(cmd, tags, func(w io.Writer) error {
						for _, t := range tags {
							fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Color)
						}
						return nil
					})
				})
			},
		},
		add,
		&cobra.Command{
			Use:   "rename <id|name> <new-name>",
			Short: "Rename a tag; entries follow automatically",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
					t, err := cat.RenameTag(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					return a.render(cmd, t, nil)
				})
			},
		},
		&cobra.Command{
			Use:   "rm <id|name>",
			Short: "Delete a tag and strip it from every entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
					if err := cat.RemoveTag(cmd.Context(), args[0]); err != nil {
						return err
					}
					return a.ack(cmd, "removed tag "+args[0], map[string]any{"tag": args[0]})
				})
			},
		},
	)
	return cmd
}
