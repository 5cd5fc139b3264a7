// ABOUTME: Cobra command tree for the outlab CLI
// ABOUTME: Loads config, configures logging, and opens the store lazily for each command
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/harperreed/outlab/config"
	"github.com/harperreed/outlab/db"
	"github.com/harperreed/outlab/files"
	"github.com/harperreed/outlab/importer"
	"github.com/harperreed/outlab/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries the resolved config and the lazily opened store.
type app struct {
	version    string
	configPath string
	dbPath     string
	initOnly   bool

	cfg   *config.Config
	db    *sql.DB
	store *files.Store
}

// NewRootCommand builds the outlab command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:           "outlab",
		Short:         "Outbound hypothesis lab",
		Long:          `outlab tracks outbound sales campaigns: hypotheses, cadences, leads, activities, and the opportunities they turn into.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.initOnly {
				return cmd.Help()
			}
			return a.initialize(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.dbPath, "db-path", "", "Database path (default: $XDG_DATA_HOME/outlab/outlab.db)")
	flags.StringVar(&a.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/outlab/config.yaml)")
	root.Flags().BoolVar(&a.initOnly, "init", false, "Initialize database and config, then exit")

	root.AddCommand(
		a.campaignCommand(),
		a.documentCommand(),
		a.cadenceCommand(),
		a.leadCommand(),
		a.accountCommand(),
		a.opportunityCommand(),
		a.overviewCommand(),
		a.graphCommand(),
		a.dashboardCommand(),
		a.demoCommand(),
		a.tuiCommand(),
		a.serveCommand(),
		a.mcpCommand(),
	)

	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DatabasePath = a.dbPath
	}
	cfg.ConfigureLogging()
	a.cfg = cfg
	return nil
}

func (a *app) database() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	database, err := db.OpenDatabase(a.cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logrus.WithField("path", a.cfg.DatabasePath).Debug("database opened")
	a.db = database
	return database, nil
}

func (a *app) files() (*files.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := files.NewStore(a.cfg.UploadDir, logrus.StandardLogger())
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

func (a *app) importer() (*importer.Importer, error) {
	database, err := a.database()
	if err != nil {
		return nil, err
	}
	return importer.New(database, logrus.StandardLogger()), nil
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

// initialize creates the database and writes a default config if none exists.
func (a *app) initialize(cmd *cobra.Command) error {
	if _, err := a.database(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s\n", a.cfg.DatabasePath)

	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := a.cfg.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Config:   %s\n", path)
	}

	success(out, "Database initialized successfully")
	return nil
}

// resolveCampaign accepts a numeric id or an exact campaign name.
func resolveCampaign(ctx context.Context, q db.Querier, ref string) (*models.Campaign, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return db.GetCampaign(ctx, q, id)
	}
	return db.GetCampaignByName(ctx, q, ref)
}

// resolveAccount accepts a numeric id or an account name.
func resolveAccount(ctx context.Context, q db.Querier, ref string) (*models.Account, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return db.GetAccount(ctx, q, id)
	}
	return db.FindAccountByName(ctx, q, ref)
}

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s ID %q", models.ErrValidation, kind, s)
	}
	return id, nil
}
