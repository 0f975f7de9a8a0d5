package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent encode runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No encode runs recorded")
				return nil
			}

			headers := []string{"Started", "Input", "Crop", "CRF", "Preset", "Status", "Duration"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.InputPath,
					run.Crop,
					strconv.Itoa(run.Quality),
					run.Preset,
					run.Status,
					run.Duration().Round(time.Second).String(),
				})
			}
			writeRows(out, headers, rows, []columnAlignment{
				alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight,
			})
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}
