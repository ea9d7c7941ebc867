package cmd

import (
	"fmt"
	"os"

	"github.com/cdelzotti/sigh/internal/config"
	"github.com/cdelzotti/sigh/internal/history"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear recorded sigh run invocations",
	Long: `history lists the most recent "sigh run" invocations
recorded in the run-history database. This is CLI
operational telemetry only: a Sigh program itself has no persisted state.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of recent runs to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "clear all recorded history")
	historyCmd.Flags().StringVar(&historyDB, "history-db", "", "path to the run-history sqlite database")
}

func runHistory(_ *cobra.Command, args []string) error {
	cfg, _ := config.LoadFirst()
	path := historyDB
	if path == "" {
		path = cfg.HistoryDB
	}
	if path == "" {
		path = history.DefaultPath()
	}

	store, err := history.Open(path, false)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer store.Close()

	if historyClear {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Println("history cleared")
		return nil
	}

	runs, err := store.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, r := range runs {
		status := "ok"
		if !r.ExitOK {
			status = "FAILED"
		}
		fmt.Fprintf(os.Stdout, "%-4d %-20s %-7s %6dms  errors=%-3d %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), status, r.DurationMS, r.ErrorCount, r.Source)
		if r.FirstError != "" {
			fmt.Fprintf(os.Stdout, "       %s\n", r.FirstError)
		}
	}
	return nil
}
