/*
Copyright © 2021 Kim van Wyk

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/ioconfig"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/iodb"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/iofs"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/iologger"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/ioregistry"
	app "github.com/kimvanwyk/md410-2021-conv-common/pkg"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/config"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/db"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registry"
	"github.com/spf13/cobra"
)

var cfg *config.Config

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "convdb",
		Short:   "convdb manages registrations of the MD410 convention",
		Long: `convdb keeps registrations of the MD410 convention in PostgreSQL.

It records registrees, their clubs or partner program membership,
purchases (full registrations, banquet, convention and theme tickets,
pins), payments, and pairs of registrees that pay together. It also
reads payments made for the prior convention.

Configuration precedence (highest to lowest):
  1. Environment variables (CONVDB_*)
  2. Config file (~/.config/convdb/config.yaml)
  3. Built-in defaults

Environment Variables:
  CONVDB_DATABASE_HOST         PostgreSQL host
  CONVDB_DATABASE_PORT         PostgreSQL port
  CONVDB_DATABASE_USER         PostgreSQL user
  CONVDB_DATABASE_PASSWORD     PostgreSQL password
  CONVDB_DATABASE_DATABASE     Database name
  CONVDB_SCHEMAS_CURRENT       Schema of the current convention
  CONVDB_SCHEMAS_PRIOR_YEAR    Schema of the prior convention
  CONVDB_LOG_LEVEL             Log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "convdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	// Override version flag to use -V (consistent with gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for convdb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getUploadCmd(),
		getShowCmd(),
		getListCmd(),
		getPayCmd(),
		getCancelCmd(),
		getPairCmd(),
		getPayeesCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	if err = iologger.Init(config.LogDir(homeDir), config.New().Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfgPath := config.ConfigFilePath(homeDir)
	if cfg, err = ioconfig.Load(cfgPath); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", cfgPath, "schema", cfg.Schemas.Current)
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// connect opens the database and creates a repository on top of it.
// The operator must be closed by the caller.
func connect(ctx context.Context) (db.Operator, registry.Repository, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, nil, err
	}

	repo, err := ioregistry.New(op, cfg.Schemas)
	if err != nil {
		op.Close()
		return nil, nil, err
	}
	return op, repo, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
