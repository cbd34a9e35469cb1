// Package cli implements the faq-catalog CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rcliao/faq-catalog/internal/catalog"
	"github.com/rcliao/faq-catalog/internal/config"
	"github.com/rcliao/faq-catalog/internal/kv"
	"github.com/rcliao/faq-catalog/internal/logger"
)

// app carries what every command needs once flags are parsed.
type app struct {
	v     *viper.Viper
	cfg   *config.Config
	log   zerolog.Logger
	store *kv.SQLite
}

func (a *app) now() time.Time { return time.Now() }

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "faq-catalog",
		Short: "Knowledge-base editor for canned support answers",
		Long: `faq-catalog keeps the catalogue of canned question/answer entries that
support agents use: browse, search, tag, bulk-edit and exchange them with
spreadsheets. State lives in a local SQLite file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(a.v, cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New("faq-catalog", cfg.LogLevel, cmd.ErrOrStderr())
			a.log.Debug().Str("db", cfg.DBPath).Str("actor", cfg.Actor).Msg("configuration loaded")
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default: ./faq-catalog.yaml or ~/.config/faq-catalog/config.yaml)")
	pf.StringP("db", "d", "", "Database path (default: $FAQ_CATALOG_DB or ~/.faq-catalog/catalog.db)")
	pf.StringP("format", "f", config.FormatJSON, "Output format: json, yaml or text")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("actor", "", "Name recorded as creator/modifier (default: $USER)")
	a.v.BindPFlag("db", pf.Lookup("db"))
	a.v.BindPFlag("format", pf.Lookup("format"))
	a.v.BindPFlag("log_level", pf.Lookup("log-level"))
	a.v.BindPFlag("actor", pf.Lookup("actor"))

	root.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newDupCmd(a),
		newRmCmd(a),
		newFavCmd(a),
		newUseCmd(a),
		newStatusCmd(a),
		newRecentCmd(a),
		newStatsCmd(a),
		newClearCmd(a),
		newImportCmd(a),
		newReplaceCmd(a),
		newExportCmd(a),
		newTemplateCmd(a),
		newCategoryCmd(a),
		newNameListCmd(a, "subcategory", catalog.ListSubCategories, "Sub-category"),
		newNameListCmd(a, "subject", catalog.ListSubjects, "Subject"),
		newNameListCmd(a, "type", catalog.ListContentTypes, "Content type"),
		newTagCmd(a),
	)
	return root
}

// Execute runs the CLI and reports errors on stderr.
func Execute() error {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

func (a *app) openCatalog(ctx context.Context) (*catalog.Catalog, error) {
	store, err := kv.NewSQLite(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.log.Debug().Str("path", store.Path()).Msg("store opened")
	cat, err := catalog.Open(ctx, store, catalog.Options{Actor: a.cfg.Actor, Logger: &a.log})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	a.store = store
	return cat, nil
}

// withCatalog opens the catalogue, runs fn and closes it again.
func (a *app) withCatalog(cmd *cobra.Command, fn func(cat *catalog.Catalog) error) error {
	cat, err := a.openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer cat.Close()
	return fn(cat)
}
