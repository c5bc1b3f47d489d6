package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/ridgeline-tours/asset-repo/common/logging"
	"github.com/ridgeline-tours/asset-repo/common/rcontext"
	"github.com/ridgeline-tours/asset-repo/common/version"
	"github.com/ridgeline-tours/asset-repo/datastores"
)

var (
	configPath string
	rootDir    string
	jsonOutput bool
	dryRun     bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "migrate_assets",
	Short: "Scan public assets and copy them into the configured datastore",
	Long: "migrate_assets runs the asset scanner and migration executor directly against the\n" +
		"configured datastore, without going through the HTTP endpoint.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the assets that would be migrated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd.OutOrStdout(), cliContext(), effectiveRoot(), jsonOutput)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Scan the asset root and upload every asset found",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cliContext()
		if dryRun {
			return runScan(cmd.OutOrStdout(), ctx, effectiveRoot(), jsonOutput)
		}

		store, err := datastores.Open(ctx.Config.Datastore)
		if err != nil {
			return errors.Wrap(err, "storage is not configured")
		}
		return runMigrate(cmd.OutOrStdout(), ctx, store, effectiveRoot(), jsonOutput)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and exit",
	Args:  cobra.NoArgs,
	// Skip config loading
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		version.Print(false)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "asset-repo.yaml", "The path to the configuration")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Asset root directory (overrides the configuration)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print machine-readable JSON instead of a summary")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level for progress output")
	migrateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Scan only, do not upload anything")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if configEnv := os.Getenv("ASSET_REPO_CONFIG"); configEnv != "" && !cmd.Flags().Changed("config") {
		configPath = configEnv
	}
	config.Path = configPath

	cfg := config.Get()
	return logging.Setup("", cfg.General.LogColors, cfg.General.JsonLogs, logLevel)
}

func cliContext() rcontext.RequestContext {
	return rcontext.Background(*config.Get(), logrus.WithFields(logrus.Fields{"cli": true}))
}

func effectiveRoot() string {
	if rootDir != "" {
		return rootDir
	}
	return config.Get().Assets.RootDirectory
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
