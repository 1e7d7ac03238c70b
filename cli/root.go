package cli

import (
	"fmt"
	"os"

	"github.com/binhbb2204/Business-Directory-Group13/cli/config"
	srvconfig "github.com/binhbb2204/Business-Directory-Group13/pkg/config"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	serverOverride string
	logLevel       string
)

var rootCmd = &cobra.Command{
	Use:           "bizdir",
	Short:         "Browse the business directory",
	Long:          `bizdir lists, filters and maps local businesses from a directory server or the embedded data set.`,
	Version:       srvconfig.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logLevel
		if level == "" {
			level = config.LoadOrDefault().Logging.Level
		}
		logger.Init(logger.LogLevel(level), false, os.Stderr)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

// serverURL returns --server when given, otherwise the configured address.
func serverURL() string {
	if serverOverride != "" {
		return serverOverride
	}
	return config.LoadOrDefault().ServerURL()
}

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
}

func printSuccess(msg string) {
	fmt.Printf("✓ %s\n", msg)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverOverride, "server", "", "Directory server URL (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(grpcCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(systemCmd)
	rootCmd.AddCommand(updateCmd)
}
