// Package cmd - paper management commands
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"paperbill/core/calendar"
	"paperbill/core/schedule"
	"paperbill/internal/errors"
)

var (
	paperName      string
	paperDelivered string
	paperPrices    []string
	paperID        string
)

// addpaperCmd represents the addpaper command
var addpaperCmd = &cobra.Command{
	Use:   "addpaper",
	Short: "Add a new paper",
	Long: `Add a paper with its weekly delivery schedule and prices.

--delivered takes seven Y/N characters, Monday first. --prices takes one
price per delivered day, in weekday order.

Example:
  paperbill addpaper --name "Daily Herald" --delivered YYYYYNN --prices 2.50 2.50 2.50 2.50 3.00`,
	RunE: runAddPaper,
}

// editpaperCmd represents the editpaper command
var editpaperCmd = &cobra.Command{
	Use:   "editpaper",
	Short: "Edit an existing paper",
	RunE:  runEditPaper,
}

// delpaperCmd represents the delpaper command
var delpaperCmd = &cobra.Command{
	Use:   "delpaper",
	Short: "Delete an existing paper",
	RunE:  runDelPaper,
}

// getpapersCmd represents the getpapers command
var getpapersCmd = &cobra.Command{
	Use:   "getpapers",
	Short: "List all papers with their schedules",
	RunE:  runGetPapers,
}

func init() {
	addpaperCmd.Flags().StringVarP(&paperName, "name", "n", "", "name for the paper")
	addpaperCmd.Flags().StringVarP(&paperDelivered, "delivered", "d", "", "seven Y/N delivery flags, Monday first")
	addpaperCmd.Flags().StringSliceVarP(&paperPrices, "prices", "c", nil, "prices for delivered days, in weekday order")
	addpaperCmd.MarkFlagRequired("name")
	addpaperCmd.MarkFlagRequired("delivered")
	addpaperCmd.MarkFlagRequired("prices")

	editpaperCmd.Flags().StringVarP(&paperID, "paperid", "p", "", "ID of the paper to edit")
	editpaperCmd.Flags().StringVarP(&paperName, "name", "n", "", "new name for the paper")
	editpaperCmd.Flags().StringVarP(&paperDelivered, "delivered", "d", "", "new seven Y/N delivery flags, Monday first")
	editpaperCmd.Flags().StringSliceVarP(&paperPrices, "prices", "c", nil, "new prices for delivered days, in weekday order")
	editpaperCmd.MarkFlagRequired("paperid")

	delpaperCmd.Flags().StringVarP(&paperID, "paperid", "p", "", "ID of the paper to delete")
	delpaperCmd.MarkFlagRequired("paperid")
}

func buildScheduleFromFlags(delivered string, prices []string) (schedule.Schedule, error) {
	days, err := schedule.ParseDeliveryDays(delivered)
	if err != nil {
		return schedule.Schedule{}, err
	}

	decimals := make([]decimal.Decimal, 0, len(prices))
	for _, p := range prices {
		d, err := decimal.NewFromString(p)
		if err != nil {
			return schedule.Schedule{}, errors.Newf(errors.TypeInput, "invalid price %q", p)
		}
		decimals = append(decimals, d)
	}

	return schedule.Build(days, decimals)
}

func runAddPaper(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sched, err := buildScheduleFromFlags(paperDelivered, paperPrices)
	if err != nil {
		return err
	}

	record, err := store.AddPaper(context.Background(), paperName, sched)
	if err != nil {
		return err
	}

	fmt.Printf("Added paper %q with ID %s\n", record.Name, record.ID)
	return nil
}

func runEditPaper(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var name *string
	if paperName != "" {
		name = &paperName
	}

	var sched *schedule.Schedule
	if paperDelivered != "" {
		built, err := buildScheduleFromFlags(paperDelivered, paperPrices)
		if err != nil {
			return err
		}
		sched = &built
	}

	if name == nil && sched == nil {
		return errors.New(errors.TypeInput, "nothing to edit: give --name and/or --delivered with --prices")
	}

	if err := store.EditPaper(context.Background(), paperID, name, sched); err != nil {
		return err
	}

	fmt.Println("Paper updated.")
	return nil
}

func runDelPaper(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeletePaper(context.Background(), paperID); err != nil {
		return err
	}

	fmt.Println("Paper deleted.")
	return nil
}

func runGetPapers(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	papers, err := store.GetPapers(context.Background())
	if err != nil {
		return err
	}

	if len(papers) == 0 {
		fmt.Println("No papers on record.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	header := table.Row{"ID", "Name"}
	for _, name := range calendar.WeekdayNames {
		header = append(header, text.FormatTitle.Apply(name[:3]))
	}
	t.AppendHeader(header)

	for _, p := range papers {
		row := table.Row{p.ID, p.Name}
		for _, entry := range p.Schedule {
			if entry.Delivered {
				row = append(row, entry.Price.StringFixed(2))
			} else {
				row = append(row, "-")
			}
		}
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Render()
	return nil
}
