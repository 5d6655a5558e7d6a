// Package cmd - bill log commands
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"paperbill/adapters/storage"
)

var (
	logMonth   int
	logYear    int
	logPaperID string
)

// getlogsCmd represents the getlogs command
var getlogsCmd = &cobra.Command{
	Use:   "getlogs",
	Short: "List saved bill calculations",
	RunE:  runGetLogs,
}

func init() {
	getlogsCmd.Flags().IntVarP(&logMonth, "month", "m", 0, "only list logs for this month")
	getlogsCmd.Flags().IntVarP(&logYear, "year", "y", 0, "only list logs for this year")
	getlogsCmd.Flags().StringVarP(&logPaperID, "paperid", "p", "", "only list logs containing this paper")
}

func runGetLogs(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	filter := &storage.LogFilter{
		PaperID: logPaperID,
		Month:   logMonth,
		Year:    logYear,
	}
	logs, err := store.ListBillLogs(context.Background(), filter)
	if err != nil {
		return err
	}

	if len(logs) == 0 {
		fmt.Println("No bill logs on record.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Month", "Year", "Calculated At", "Papers", "Total"})
	for _, l := range logs {
		t.AppendRow(table.Row{
			l.ID,
			l.Month,
			l.Year,
			l.Timestamp.Format("2006-01-02 15:04"),
			len(l.Entries),
			l.Total.StringFixed(2),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Total", Align: text.AlignRight},
	})
	t.Render()
	return nil
}
