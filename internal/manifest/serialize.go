package manifest

import (
	"strconv"
	"strings"
)

// Line renders the entry as a single manifest line. The optional transcript
// field is emitted only when present.
//
// There is no escaping for '|' inside field values; callers producing
// manifests must not embed the delimiter in transcripts.
func (e AudioEntry) Line() string {
	fields := []string{string(e.Section), strconv.Itoa(e.Part), e.Filename}
	if e.Transcript != "" {
		fields = append(fields, e.Transcript)
	}
	return strings.Join(fields, "|")
}

// Line renders the entry as a single manifest line. The optional caption
// field is emitted only when present.
func (e ImageEntry) Line() string {
	fields := []string{string(e.Section), string(e.Position), e.Filename, e.AltText}
	if e.Caption != "" {
		fields = append(fields, e.Caption)
	}
	return strings.Join(fields, "|")
}

// SerializeAudio renders entries as manifest text, one line per entry.
func SerializeAudio(entries []AudioEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Line())
	}
	return strings.Join(lines, "\n")
}

// SerializeImage renders entries as manifest text, one line per entry.
func SerializeImage(entries []ImageEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Line())
	}
	return strings.Join(lines, "\n")
}
