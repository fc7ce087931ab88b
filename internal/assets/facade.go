package assets

import (
	"fmt"

	"cradle/internal/manifest"
)

// HasAudioForSection reports whether the section has at least one narration
// part.
func (m Media) HasAudioForSection(section manifest.Section) bool {
	group, ok := m.Audio[section]
	return ok && len(group.Parts) > 0
}

// HasImagesForSection reports whether the section has at least one image.
func (m Media) HasImagesForSection(section manifest.Section) bool {
	return len(m.Images[section]) > 0
}

// SectionAudio returns the audio group for a section, if any.
func (m Media) SectionAudio(section manifest.Section) (SectionAudio, bool) {
	group, ok := m.Audio[section]
	return group, ok
}

// SectionImages returns the image list for a section in manifest order.
func (m Media) SectionImages(section manifest.Section) []manifest.ImageEntry {
	return m.Images[section]
}

// ImagesAt filters a section's images by position, preserving manifest order.
func (m Media) ImagesAt(section manifest.Section, position manifest.Position) []manifest.ImageEntry {
	var out []manifest.ImageEntry
	for _, entry := range m.Images[section] {
		if entry.Position == position {
			out = append(out, entry)
		}
	}
	return out
}

// AudioURL builds the serving path for a narration file. The filename is
// assumed to have been validated by the manifest parser; no I/O is performed.
func AudioURL(storyID int64, filename string) string {
	return fmt.Sprintf("/audio/stories/%d/%s", storyID, filename)
}

// ImageURL builds the serving path for an illustration file.
func ImageURL(storyID int64, filename string) string {
	return fmt.Sprintf("/images/stories/%d/%s", storyID, filename)
}

// AudioManifestURL builds the serving path for a story's audio manifest.
func AudioManifestURL(storyID int64) string {
	return fmt.Sprintf("/audio/stories/%d/manifest.txt", storyID)
}

// ImageManifestURL builds the serving path for a story's image manifest.
func ImageManifestURL(storyID int64) string {
	return fmt.Sprintf("/images/stories/%d/manifest.txt", storyID)
}
