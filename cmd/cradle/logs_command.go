package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type logsResponse struct {
	Lines  []string `json:"lines"`
	Offset int64    `json:"offset"`
}

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the cradled daemon log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var payload logsResponse
			if err := ctx.getJSON("/api/logs?limit="+strconv.Itoa(lines), &payload); err != nil {
				return err
			}
			for _, line := range payload.Lines {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}

			offset := payload.Offset
			for {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				// Long-poll under the HTTP client timeout.
				path := fmt.Sprintf("/api/logs?offset=%d&wait_ms=8000", offset)
				if err := ctx.getJSON(path, &payload); err != nil {
					return err
				}
				for _, line := range payload.Lines {
					fmt.Fprintln(out, line)
				}
				offset = payload.Offset
			}
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep streaming new log lines")
	return cmd
}
