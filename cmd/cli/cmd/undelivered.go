// Package cmd - undelivered string commands
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"paperbill/adapters/storage"
	"paperbill/internal/errors"
)

var (
	udlMonth   int
	udlYear    int
	udlPaperID string
	udlAll     bool
	udlStrings []string
	udlID      string
)

// addudlCmd represents the addudl command
var addudlCmd = &cobra.Command{
	Use:   "addudl",
	Short: "Record dates a paper was not delivered",
	Long: `Record undelivered strings for a month. Each string names days the paper
was not delivered: day numbers ("5"), ranges ("5-12"), weekday names
("mondays"), the nth weekday ("2-monday"), or "all". Strings are checked
before anything is saved.

Give --paperid to record against one paper, or --all for every paper.`,
	RunE: runAddUdl,
}

// deludlCmd represents the deludl command
var deludlCmd = &cobra.Command{
	Use:   "deludl",
	Short: "Delete recorded undelivered strings",
	RunE:  runDelUdl,
}

// getudlCmd represents the getudl command
var getudlCmd = &cobra.Command{
	Use:   "getudl",
	Short: "List recorded undelivered strings",
	RunE:  runGetUdl,
}

func init() {
	addudlCmd.Flags().IntVarP(&udlMonth, "month", "m", 0, "month to record for (defaults to the previous month)")
	addudlCmd.Flags().IntVarP(&udlYear, "year", "y", 0, "year to record for (defaults to the previous month's year)")
	addudlCmd.Flags().StringVarP(&udlPaperID, "paperid", "p", "", "ID of the paper the strings apply to")
	addudlCmd.Flags().BoolVarP(&udlAll, "all", "a", false, "record the strings for every paper")
	addudlCmd.Flags().StringSliceVarP(&udlStrings, "strings", "s", nil, "undelivered strings to record")
	addudlCmd.MarkFlagRequired("strings")

	deludlCmd.Flags().IntVarP(&udlMonth, "month", "m", 0, "month to delete from")
	deludlCmd.Flags().IntVarP(&udlYear, "year", "y", 0, "year to delete from")
	deludlCmd.Flags().StringVarP(&udlPaperID, "paperid", "p", "", "only delete strings for this paper")
	deludlCmd.Flags().StringVarP(&udlID, "id", "i", "", "delete one string by its ID")

	getudlCmd.Flags().IntVarP(&udlMonth, "month", "m", 0, "only list strings for this month")
	getudlCmd.Flags().IntVarP(&udlYear, "year", "y", 0, "only list strings for this year")
	getudlCmd.Flags().StringVarP(&udlPaperID, "paperid", "p", "", "only list strings for this paper")
	getudlCmd.Flags().StringVarP(&udlID, "id", "i", "", "list one string by its ID")
}

func runAddUdl(cmd *cobra.Command, args []string) error {
	if udlPaperID == "" && !udlAll {
		return errors.New(errors.TypeInput, "give --paperid or --all")
	}
	if udlPaperID != "" && udlAll {
		return errors.New(errors.TypeInput, "--paperid and --all are mutually exclusive")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	spec := resolveMonth(udlMonth, udlYear)
	if err := store.AddUndeliveredStrings(context.Background(), spec, udlPaperID, udlStrings...); err != nil {
		return err
	}

	fmt.Printf("Recorded %d string(s) for %s.\n", len(udlStrings), spec)
	return nil
}

func runDelUdl(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	filter := &storage.StringFilter{
		ID:      udlID,
		PaperID: udlPaperID,
		Month:   udlMonth,
		Year:    udlYear,
	}
	if err := store.DeleteUndeliveredStrings(context.Background(), filter); err != nil {
		return err
	}

	fmt.Println("Strings deleted.")
	return nil
}

func runGetUdl(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	filter := &storage.StringFilter{
		ID:      udlID,
		PaperID: udlPaperID,
		Month:   udlMonth,
		Year:    udlYear,
	}
	records, err := store.GetUndeliveredStrings(context.Background(), filter)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No undelivered strings on record.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Paper ID", "Month", "Year", "String"})
	for _, r := range records {
		t.AppendRow(table.Row{r.ID, r.PaperID, r.Month, r.Year, r.Value})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}
