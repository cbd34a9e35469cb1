package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/faq-catalog/internal/catalog"
	"github.com/rcliao/faq-catalog/internal/kv"
)

type statsOutput struct {
	catalog.Stats `yaml:",inline"`
	DBPath        string      `json:"db_path" yaml:"db_path"`
	DBSize        int64       `json:"db_size" yaml:"db_size"`
	Snapshots     []kv.Record `json:"snapshots" yaml:"snapshots"`
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(cmd, func(cat *catalog.Catalog) error {
				snaps, err := cat.Snapshots(cmd.Context())
				if err != nil {
					return err
				}
				out := statsOutput{
					Stats:     cat.Stats(),
					DBPath:    a.store.Path(),
					DBSize:    a.store.SizeBytes(),
					Snapshots: snaps,
				}
				return a.render(cmd, out, func(w io.Writer) error {
					return statsText(w, out, a)
				})
			})
		},
	}
}

func statsText(w io.Writer, out statsOutput, a *app) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "entries:\t%s\n", humanize.Comma(int64(out.Total)))
	fmt.Fprintf(tw, "favourites:\t%s\n", humanize.Comma(int64(out.Favorites)))
	fmt.Fprintf(tw, "recent:\t%d\n", out.Recent)
	fmt.Fprintf(tw, "answers used:\t%s\n", humanize.Comma(int64(out.TotalUsage)))
	for _, group := range []struct {
		title  string
		counts []catalog.Count
	}{{"by type", out.ByType}, {"by category", out.ByCategory}, {"by status", out.ByStatus}} {
		fmt.Fprintf(tw, "%s:\t\n", group.title)
		for _, c := range group.counts {
			fmt.Fprintf(tw, "  %s\t%d\n", c.Name, c.Count)
		}
	}
	fmt.Fprintf(tw, "database:\t%s (%s)\n", out.DBPath, humanize.Bytes(uint64(out.DBSize)))
	for _, s := range out.Snapshots {
		fmt.Fprintf(tw, "  %s\t%s, saved %s\n", s.Key, humanize.Bytes(uint64(s.Size)), humanize.RelTime(s.UpdatedAt, a.now(), "ago", "from now"))
	}
	return tw.Flush()
}
