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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/iodb"
	"github.com/kimvanwyk/md410-2021-conv-common/internal/ioschema"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the registration tables from scratch.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Checks for existing tables and prompts for confirmation
  3. Creates schemas of the current and the prior convention
  4. Creates all tables using GORM AutoMigrate

Use --force to skip confirmation and drop existing tables.

Examples:
  convdb create
  convdb create --force
  convdb create -f`,
		RunE: withErrorMessage(func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, forceCreate)
		}),
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(
	_ *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	var existing []string
	for _, v := range []string{cfg.Schemas.Current, cfg.Schemas.PriorYear} {
		hasTables, err := op.HasTables(ctx, v)
		if err != nil {
			return err
		}
		if hasTables {
			existing = append(existing, v)
		}
	}

	if len(existing) > 0 {
		if !force {
			gn.Warn("Schemas <em>%s</em> contain existing tables.",
				strings.Join(existing, ", "))
			gn.Warn("Creating schema will drop ALL " +
				"existing tables and data.")
			fmt.Print("\nDo you want to continue? (yes/no): ")

			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				gn.Warn("Failed to read user input")
				return err
			}

			if !confirmed(response) {
				gn.Info("Aborted. No changes made.")
				return nil
			}
		}

		for _, v := range existing {
			gn.Info("Dropping tables of <em>%s</em>...", v)
			if err := op.DropSchemaTables(ctx, v); err != nil {
				return err
			}
		}
	}

	sm := ioschema.NewManager(op)

	gn.Info("Creating schema using GORM AutoMigrate...")
	if err := sm.Create(ctx, cfg); err != nil {
		return err
	}

	gn.Info("Database schema creation complete!")
	gn.Info("Next step: run <em>convdb upload FILE.yaml</em> to add registrees")
	return nil
}

func confirmed(response string) bool {
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
