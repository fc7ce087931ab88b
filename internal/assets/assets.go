package assets

import (
	"sort"

	"cradle/internal/manifest"
)

// SectionAudio aggregates the ordered narration parts of one section.
type SectionAudio struct {
	Section    manifest.Section      `json:"section"`
	Parts      []manifest.AudioEntry `json:"parts"`
	TotalParts int                   `json:"total_parts"`
}

// Media is the per-story runtime view of everything the manifests describe.
// Consumers must treat the contained maps as read-only.
type Media struct {
	Audio  map[manifest.Section]SectionAudio          `json:"audio"`
	Images map[manifest.Section][]manifest.ImageEntry `json:"images"`
}

// BuildAudio groups flat audio entries by section, sorting each section's
// parts ascending by part number. Part numbers need not be contiguous; the
// ascending order is the play order.
func BuildAudio(entries []manifest.AudioEntry) map[manifest.Section]SectionAudio {
	groups := make(map[manifest.Section]SectionAudio)
	for _, entry := range entries {
		group := groups[entry.Section]
		group.Section = entry.Section
		group.Parts = append(group.Parts, entry)
		groups[entry.Section] = group
	}

	for section, group := range groups {
		sort.SliceStable(group.Parts, func(i, j int) bool {
			return group.Parts[i].Part < group.Parts[j].Part
		})
		group.TotalParts = len(group.Parts)
		groups[section] = group
	}

	return groups
}

// BuildImages groups flat image entries by section, preserving input order
// within each section.
func BuildImages(entries []manifest.ImageEntry) map[manifest.Section][]manifest.ImageEntry {
	groups := make(map[manifest.Section][]manifest.ImageEntry)
	for _, entry := range entries {
		groups[entry.Section] = append(groups[entry.Section], entry)
	}
	return groups
}

// Build assembles the full media view from both manifest entry lists.
func Build(audio []manifest.AudioEntry, images []manifest.ImageEntry) Media {
	return Media{
		Audio:  BuildAudio(audio),
		Images: BuildImages(images),
	}
}
