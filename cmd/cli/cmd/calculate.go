// Package cmd - calculate command
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"paperbill/core/engine"
	"paperbill/core/output"
	"paperbill/internal/config"
)

var (
	calcMonth  int
	calcYear   int
	calcNoLog  bool
	calcFormat string
	calcDates  bool
)

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate the monthly bill for all papers",
	Long: `Calculate what every paper costs for a month, accounting for the
dates it was not delivered. Month and year default to the previous month.

The result is logged for later audit unless --nolog is given.

Examples:
  paperbill calculate
  paperbill calculate --month 5 --year 2017
  paperbill calculate --format json --nolog`,
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().IntVarP(&calcMonth, "month", "m", 0, "month to calculate the bill for (1-12)")
	calculateCmd.Flags().IntVarP(&calcYear, "year", "y", 0, "year to calculate the bill for")
	calculateCmd.Flags().BoolVarP(&calcNoLog, "nolog", "l", false, "don't log the result of the calculation")
	calculateCmd.Flags().StringVarP(&calcFormat, "format", "f", "", "output format (table, json)")
	calculateCmd.Flags().BoolVarP(&calcDates, "dates", "d", false, "show resolved undelivered dates per paper")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	spec := resolveMonth(calcMonth, calcYear)

	bill, err := engine.New(store).CalculateMonth(context.Background(), spec, !calcNoLog)
	if err != nil {
		return err
	}

	cfg := config.Get()
	format := cfg.Output.DefaultFormat
	if calcFormat != "" {
		format = calcFormat
	}

	formatter, err := output.NewFormatter(output.Format(format))
	if err != nil {
		return err
	}

	opts := output.Options{ShowUndelivered: calcDates || cfg.Output.ShowUndelivered}
	return formatter.Render(os.Stdout, bill, opts)
}
