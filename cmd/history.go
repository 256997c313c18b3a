package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaeljabbour/addteam/internal/history"
	"github.com/michaeljabbour/addteam/internal/render"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent reconciliation runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	path := settings.HistoryPath
	if path == "" {
		path, err = history.DefaultPath()
		if err != nil {
			return err
		}
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(repoFlag, historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println(render.Dim("no runs recorded yet"))
		return nil
	}

	for _, rec := range records {
		drift := rec.Missing + rec.Extra + rec.PermissionChanges + rec.Expired
		actions := rec.Invited + rec.Removed + rec.Updated
		fmt.Printf("%s  %-28s %-10s drift=%d actions=%d\n",
			rec.RanAt.Local().Format("2006-01-02 15:04"),
			rec.Repo, rec.Mode, drift, actions)
	}
	return nil
}
