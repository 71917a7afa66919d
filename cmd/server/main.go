package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "apkraft",
	Short: "apkraft - catalog and update server for mobile app releases",
	Long: `apkraft serves the app catalog API: platforms, apps, app versions and
uploaded files, plus the update check used by installed clients.

Examples:
  apkraft serve
  apkraft migrate up
  apkraft migrate down --steps 1
  apkraft migrate version`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
