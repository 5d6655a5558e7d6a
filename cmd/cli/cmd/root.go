// Package cmd provides the CLI commands for paperbill.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"paperbill/adapters/storage"
	"paperbill/core/calendar"
	"paperbill/internal/config"
	"paperbill/internal/logging"
)

var (
	cfgFile string
	dataDir string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "paperbill",
	Short: "Track newspaper deliveries and calculate monthly bills",
	Long: `paperbill keeps a record of newspaper subscriptions, the dates they
were not delivered, and calculates what each one costs per month.

Examples:
  paperbill calculate
  paperbill calculate --month 5 --year 2017
  paperbill addudl --strings "mondays,5-17" --all
  paperbill addpaper --name "Daily Herald" --delivered YYYYYNN --prices 2.50 2.50 2.50 2.50 3.00`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.paperbill/config.json)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(addudlCmd)
	rootCmd.AddCommand(deludlCmd)
	rootCmd.AddCommand(getudlCmd)
	rootCmd.AddCommand(addpaperCmd)
	rootCmd.AddCommand(editpaperCmd)
	rootCmd.AddCommand(delpaperCmd)
	rootCmd.AddCommand(getpapersCmd)
	rootCmd.AddCommand(getlogsCmd)
	rootCmd.AddCommand(versionCmd)
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

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// openStore opens the configured storage backend
func openStore() (storage.Store, error) {
	cfg := config.Get()
	dir := cfg.Storage.DataDir
	if dataDir != "" {
		dir = dataDir
	}
	return storage.New(storage.Backend(cfg.Storage.Backend), dir)
}

// resolveMonth defaults a missing month/year to the previous calendar month,
// matching the common case of billing last month's deliveries
func resolveMonth(month, year int) calendar.MonthSpec {
	if month == 0 && year == 0 {
		return calendar.PreviousMonth(time.Now())
	}
	spec := calendar.MonthSpec{Month: month, Year: year}
	if month == 0 || year == 0 {
		now := calendar.PreviousMonth(time.Now())
		if month == 0 {
			spec.Month = now.Month
		}
		if year == 0 {
			spec.Year = now.Year
		}
	}
	return spec
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("paperbill version 0.1.0")
	},
}
