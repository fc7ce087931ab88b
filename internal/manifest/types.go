package manifest

import "strings"

// Section identifies one of the four fixed narrative phases of a story.
type Section string

const (
	SectionIntroduction Section = "introduction"
	SectionCoreContent  Section = "coreContent"
	SectionInteractive  Section = "interactiveSection"
	SectionIntegration  Section = "integration"
)

// Sections returns all sections in narrative order.
func Sections() []Section {
	return []Section{
		SectionIntroduction,
		SectionCoreContent,
		SectionInteractive,
		SectionIntegration,
	}
}

// ParseSection validates a raw section name against the fixed enumeration.
func ParseSection(value string) (Section, bool) {
	switch Section(strings.TrimSpace(value)) {
	case SectionIntroduction:
		return SectionIntroduction, true
	case SectionCoreContent:
		return SectionCoreContent, true
	case SectionInteractive:
		return SectionInteractive, true
	case SectionIntegration:
		return SectionIntegration, true
	default:
		return "", false
	}
}

// Position places an image relative to its section's text.
type Position string

const (
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
	PositionInline Position = "inline"
)

// ParsePosition validates a raw position value.
func ParsePosition(value string) (Position, bool) {
	switch Position(strings.TrimSpace(value)) {
	case PositionBefore:
		return PositionBefore, true
	case PositionAfter:
		return PositionAfter, true
	case PositionInline:
		return PositionInline, true
	default:
		return "", false
	}
}

// AudioEntry describes one narrated-audio fragment. Sections whose narration
// exceeds the synthesis length limit are split into multiple ordered parts.
type AudioEntry struct {
	Section    Section `json:"section"`
	Part       int     `json:"part"`
	Filename   string  `json:"filename"`
	Transcript string  `json:"transcript,omitempty"`
}

// ImageEntry describes one illustration. AltText is mandatory; entries
// without it are rejected at parse time.
type ImageEntry struct {
	Section  Section  `json:"section"`
	Position Position `json:"position"`
	Filename string   `json:"filename"`
	AltText  string   `json:"alt_text"`
	Caption  string   `json:"caption,omitempty"`
}
