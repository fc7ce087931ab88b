package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type statusResponse struct {
	Running    bool   `json:"running"`
	PID        int    `json:"pid"`
	UptimeSecs int64  `json:"uptime_seconds"`
	LibraryDir string `json:"library_dir"`
	Stories    int    `json:"stories"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show cradled daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload statusResponse
			if err := ctx.getJSON("/api/status", &payload); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Running:  %s\n", yesNo(payload.Running))
			fmt.Fprintf(out, "PID:      %d\n", payload.PID)
			fmt.Fprintf(out, "Uptime:   %s\n", (time.Duration(payload.UptimeSecs) * time.Second).String())
			fmt.Fprintf(out, "Library:  %s\n", payload.LibraryDir)
			fmt.Fprintf(out, "Stories:  %d\n", payload.Stories)
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
