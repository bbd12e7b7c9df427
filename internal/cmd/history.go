package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polishai/polish/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent enhancement runs",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), historyLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No enhancement runs recorded yet.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %-12s %-34s score=%-3d %5d -> %-5d chars  %dms\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.Type,
			rec.Model,
			rec.Score,
			rec.OriginalLength,
			rec.EnhancedLength,
			rec.DurationMs)
	}

	return nil
}
