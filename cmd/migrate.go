package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/killallgit/clipper-api/internal/models"
	"github.com/killallgit/clipper-api/pkg/config"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage database migrations for the Clipper API.

The schema is derived from the models and applied with GORM auto migration,
which only ever adds tables, columns and indexes.

Available subcommands:
  up      - Create or update every table
  status  - Show which tables exist`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Long: `Apply all pending database migrations.

Every model table is created or brought up to date with the current
schema. Running it against an up to date database is a no-op.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Display the current status of database migrations.

This command lists every model table and whether it exists yet.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	status, err := db.TableStatus(models.All()...)
	if err != nil {
		return err
	}
	pending := pendingTables(status)

	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		if len(pending) == 0 {
			fmt.Fprintln(out, "All tables exist; columns and indexes would be reconciled")
		} else {
			fmt.Fprintf(out, "Would create: %s\n", strings.Join(pending, ", "))
		}
		return nil
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}

	fmt.Fprintf(out, "Migrated %d table(s) in %s\n", len(status), cfg.Database.Path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	status, err := db.TableStatus(models.All()...)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Database: %s\n\n", cfg.Database.Path)

	for _, name := range sortedKeys(status) {
		state := "pending"
		if status[name] {
			state = "applied"
		}
		fmt.Fprintf(out, "  %-20s %s\n", name, state)
	}
	return nil
}

func pendingTables(status map[string]bool) []string {
	var pending []string
	for _, name := range sortedKeys(status) {
		if !status[name] {
			pending = append(pending, name)
		}
	}
	return pending
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
