// Package cmd provides the CLI commands for tarifador.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DaniloReis10/TarifadorTest-sub000/internal/config"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tarifador",
	Short: "Rate call records and compute billing period reports",
	Long: `tarifador is the billing back-office engine for resold telephony
and VoIP services.

It rates call detail records and recurring equipment inventories for a
billing period and rolls results up per company, organization and grand
total, in local currency and in UST.

Examples:
  tarifador report --month 2024-06 --policy policy.yml
  tarifador report --month 2024-06 --org 3 --format csv
  tarifador report --start 2024-06-01 --end 2024-06-30 --format json`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tarifador.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tarifador version 0.1.0")
	},
}

// configCmd writes a default configuration file
var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path = home + "/.tarifador.json"
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}
