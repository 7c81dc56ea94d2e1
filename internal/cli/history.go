package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/sketchdeck/internal/settings"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past practice sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *settings.Store) error {
				records, err := store.ListSessions(cmd.Context(), limit)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(w, "No sessions recorded yet")
					return nil
				}

				rows := make([][]string, 0, len(records))
				var total time.Duration
				for _, rec := range records {
					total += rec.Duration()
					rows = append(rows, []string{
						humanize.Time(rec.StartedAt),
						rec.Duration().Round(time.Second).String(),
						strconv.Itoa(rec.Completed),
						strconv.Itoa(rec.Shown),
						limitLabel(rec.Limit),
						timerLabel(rec.TimerSeconds),
						strings.Join(rec.Categories, ", "),
					})
				}
				headers := []string{"Started", "Duration", "Completed", "Shown", "Limit", "Timer", "Categories"}
				aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}
				fmt.Fprintln(w, renderTable(w, headers, rows, aligns))
				fmt.Fprintf(w, "%d sessions, %s practised\n", len(records), total.Round(time.Second))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of sessions to show (0 for all)")
	return cmd
}

func limitLabel(limit int) string {
	if limit <= 0 {
		return "-"
	}
	return strconv.Itoa(limit)
}

func timerLabel(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	return (time.Duration(seconds) * time.Second).String()
}
