package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cradle/internal/manifest"
)

func newManifestCommand() *cobra.Command {
	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Manifest utilities",
	}

	manifestCmd.AddCommand(newManifestLintCommand())

	return manifestCmd
}

func newManifestLintCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:         "lint <file>",
		Short:       "Parse a manifest file and report malformed lines",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}

			var count int
			var diags []manifest.Diagnostic
			switch strings.ToLower(strings.TrimSpace(kind)) {
			case "audio":
				entries, d := manifest.ParseAudio(string(data))
				count, diags = len(entries), d
			case "image", "images":
				entries, d := manifest.ParseImage(string(data))
				count, diags = len(entries), d
			default:
				return fmt.Errorf("unknown manifest kind %q (want audio or image)", kind)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Parsed %d entries from %s\n", count, args[0])
			if len(diags) == 0 {
				return nil
			}

			rows := make([][]string, 0, len(diags))
			for _, diag := range diags {
				rows = append(rows, []string{
					strconv.Itoa(diag.Line),
					diag.Reason,
					diag.Text,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Line", "Reason", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return fmt.Errorf("%d malformed manifest lines", len(diags))
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "audio", "Manifest kind: audio or image")
	return cmd
}
