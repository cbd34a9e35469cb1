package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/rcliao/faq-catalog/internal/config"
	"github.com/rcliao/faq-catalog/internal/model"
)

// render writes v in the configured format. text is used for the text
// format; when nil, text falls back to YAML.
func (a *app) render(cmd *cobra.Command, v any, text func(w io.Writer) error) error {
	w := cmd.OutOrStdout()
	switch a.cfg.Format {
	case config.FormatYAML:
		return writeYAML(w, v)
	case config.FormatText:
		if text != nil {
			return text(w)
		}
		return writeYAML(w, v)
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return enc.Close()
}

// ack reports a successful mutation as {"ok":true,...} or, in the text
// format, as msg.
func (a *app) ack(cmd *cobra.Command, msg string, fields map[string]any) error {
	out := map[string]any{"ok": true}
	for k, v := range fields {
		out[k] = v
	}
	return a.render(cmd, out, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, msg)
		return err
	})
}

// entryLines prints a compact table of entries.
func entryLines(w io.Writer, entries []model.Entry, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCODE\tTITLE\tCATEGORY\tSTATUS\tUSED\tCREATED")
	for _, e := range entries {
		fav := ""
		if e.IsFavorite {
			fav = " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Code, truncate(e.Title, 48), fav, e.Category, e.Status.Label(),
			humanize.Comma(int64(e.UsageCount)), humanize.RelTime(e.CreatedAt, now, "ago", "from now"))
	}
	return tw.Flush()
}

// entryDetail prints every user-facing field of one entry. Tags must
// already be names.
func entryDetail(w io.Writer, e model.Entry, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", k, v)
		}
	}
	row("id", e.ID)
	row("code", e.Code)
	row("type", e.Type)
	row("category", strings.Trim(e.Category+" / "+e.SubCategory, " /"))
	row("status", e.Status.Label())
	row("title", e.Title)
	row("question", e.Question)
	row("cta", e.CTADefault)
	row("cta (alt)", e.CTAAlternative)
	row("file", e.FileURL)
	row("keywords", model.JoinList(e.Keywords))
	row("tags", model.JoinList(e.Tags))
	row("subjects", model.JoinList(e.Subjects))
	row("age group", e.AgeGroup)
	row("priority", fmt.Sprint(e.Priority))
	row("used", humanize.Comma(int64(e.UsageCount)))
	row("created", fmt.Sprintf("%s by %s", humanize.RelTime(e.CreatedAt, now, "ago", "from now"), e.CreatedBy))
	if e.LastModifiedAt != nil {
		row("modified", fmt.Sprintf("%s by %s", humanize.RelTime(*e.LastModifiedAt, now, "ago", "from now"), e.LastModifiedBy))
	}
	row("note", e.InternalNote)
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", e.Answer)
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// confirm asks a y/N question on the command's input.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// splitFlag splits a comma-separated flag value.
func splitFlag(cmd *cobra.Command, name string) []string {
	raw, _ := cmd.Flags().GetString(name)
	return model.SplitList(raw)
}
