package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cradle/internal/assetcache"
	"cradle/internal/assets"
	"cradle/internal/manifest"
	"cradle/internal/mediaclient"
)

type storyView struct {
	ID      int64  `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Week    int    `json:"week"`
	Summary string `json:"summary,omitempty"`
}

type storyListResponse struct {
	Stories []storyView `json:"stories"`
}

func newStoryCommand(ctx *commandContext) *cobra.Command {
	storyCmd := &cobra.Command{
		Use:   "story",
		Short: "Inspect the story catalog and its media",
	}

	storyCmd.AddCommand(newStoryListCommand(ctx))
	storyCmd.AddCommand(newStoryMediaCommand(ctx))

	return storyCmd
}

func newStoryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog stories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload storyListResponse
			if err := ctx.getJSON("/api/stories", &payload); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(payload.Stories) == 0 {
				fmt.Fprintln(out, "No stories in the catalog.")
				return nil
			}

			if !isTerminal(out) {
				for _, story := range payload.Stories {
					fmt.Fprintf(out, "%d\t%d\t%s\t%s\n", story.ID, story.Week, story.Slug, story.Title)
				}
				return nil
			}

			rows := make([][]string, 0, len(payload.Stories))
			for _, story := range payload.Stories {
				rows = append(rows, []string{
					strconv.FormatInt(story.ID, 10),
					strconv.Itoa(story.Week),
					story.Slug,
					story.Title,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Week", "Slug", "Title"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newStoryMediaCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "media <story-id>",
		Short: "Resolve and show a story's media manifests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storyID, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || storyID < 1 {
				return fmt.Errorf("invalid story id %q", args[0])
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			client := mediaclient.NewFromConfig(cfg, nil)
			cache := assetcache.New(nil)
			media, err := cache.GetOrLoad(cmd.Context(), storyID, client.Load)
			if err != nil {
				return fmt.Errorf("resolve media for story %d: %w", storyID, err)
			}

			printMedia(cmd, storyID, media)
			return nil
		},
	}
}

func printMedia(cmd *cobra.Command, storyID int64, media assets.Media) {
	out := cmd.OutOrStdout()

	if len(media.Audio) == 0 && len(media.Images) == 0 {
		fmt.Fprintf(out, "Story %d has no audio or image media.\n", storyID)
		return
	}

	for _, section := range manifest.Sections() {
		group, hasAudio := media.SectionAudio(section)
		images := media.SectionImages(section)
		if !hasAudio && len(images) == 0 {
			continue
		}

		fmt.Fprintf(out, "%s\n", sectionLabel(section))
		if hasAudio {
			fmt.Fprintf(out, "  Audio (%d parts)\n", group.TotalParts)
			for _, part := range group.Parts {
				fmt.Fprintf(out, "    %2d. %s", part.Part, assets.AudioURL(storyID, part.Filename))
				if part.Transcript != "" {
					fmt.Fprintf(out, "  %q", part.Transcript)
				}
				fmt.Fprintln(out)
			}
		}
		if len(images) > 0 {
			fmt.Fprintf(out, "  Images (%d)\n", len(images))
			for _, img := range images {
				fmt.Fprintf(out, "    [%s] %s  alt=%q", img.Position, assets.ImageURL(storyID, img.Filename), img.AltText)
				if img.Caption != "" {
					fmt.Fprintf(out, " caption=%q", img.Caption)
				}
				fmt.Fprintln(out)
			}
		}
	}
}

var titleCaser = cases.Title(language.English)

// sectionLabel turns a camelCase section name into a display heading, e.g.
// coreContent -> "Core Content".
func sectionLabel(section manifest.Section) string {
	var b strings.Builder
	for i, r := range string(section) {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return titleCaser.String(b.String())
}
