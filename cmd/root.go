package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/clipper-api/pkg/config"
	"github.com/killallgit/clipper-api/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clipper-api",
	Short: "Clipper API server",
	Long: `Clipper API - cut clips out of source videos and run feature stages over them

The API resolves source metadata, validates the requested time window,
runs the requested feature stages and stores a downloadable artifact
for every completed clip.

Features:
  • Source metadata via yt-dlp or the YouTube Data API
  • Ordered, concurrent feature stages with per-stage failure isolation
  • Clip lifecycle tracking with a stale clip sweeper
  • Owner and admin scoped artifact downloads`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command with every flag in the tree reset to
// its default, so repeated executions in one process start clean (exported
// for testing)
func NewRootCmd() *cobra.Command {
	resetFlags(rootCmd)
	return rootCmd
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func init() {
	// Set up configuration loading with lazy initialization
	cobra.OnInitialize(loadConfig)

	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads the configuration and configures logging. The version
// command runs without it.
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && cmd.Name() == "version" {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}

	initLogging()
}

// initLogging applies the logging flags, falling back to the config file
// for any flag left at its default
func initLogging() {
	flags := rootCmd.PersistentFlags()

	level := viper.GetString("logging.level")
	if flags.Changed("log-level") || level == "" {
		level, _ = flags.GetString("log-level")
	}

	jsonLogs := viper.GetString("logging.format") == "json"
	if flags.Changed("json-logs") {
		jsonLogs, _ = flags.GetBool("json-logs")
	}

	logging.Init(level, jsonLogs)
}
