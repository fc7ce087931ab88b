package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// Diagnostic records a manifest line that was rejected during parsing.
type Diagnostic struct {
	Line   int    // 1-based line number in the input
	Reason string // human-readable rejection reason
	Text   string // the offending line, trimmed
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Reason, d.Text)
}

const (
	audioMinFields = 3
	imageMinFields = 4
)

// ParseAudio parses an audio manifest. It is total: malformed lines are
// skipped and reported as diagnostics, never as an error.
func ParseAudio(text string) ([]AudioEntry, []Diagnostic) {
	var entries []AudioEntry
	var diags []Diagnostic

	forEachLine(text, func(lineNo int, line string) {
		fields := strings.Split(line, "|")
		if len(fields) < audioMinFields {
			diags = append(diags, Diagnostic{lineNo, fmt.Sprintf("expected at least %d fields, got %d", audioMinFields, len(fields)), line})
			return
		}

		section, ok := ParseSection(fields[0])
		if !ok {
			diags = append(diags, Diagnostic{lineNo, fmt.Sprintf("unknown section %q", strings.TrimSpace(fields[0])), line})
			return
		}

		part, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || part < 1 {
			diags = append(diags, Diagnostic{lineNo, fmt.Sprintf("part number %q is not a positive integer", strings.TrimSpace(fields[1])), line})
			return
		}

		filename := strings.TrimSpace(fields[2])
		if filename == "" {
			diags = append(diags, Diagnostic{lineNo, "empty filename", line})
			return
		}

		entry := AudioEntry{Section: section, Part: part, Filename: filename}
		if len(fields) > 3 {
			entry.Transcript = strings.TrimSpace(fields[3])
		}
		entries = append(entries, entry)
	})

	return entries, diags
}

// ParseImage parses an image manifest under the same tolerant policy as
// ParseAudio.
func ParseImage(text string) ([]ImageEntry, []Diagnostic) {
	var entries []ImageEntry
	var diags []Diagnostic

	forEachLine(text, func(lineNo int, line string) {
		fields := strings.Split(line, "|")
		if len(fields) < imageMinFields {
			diags = append(diags, Diagnostic{lineNo, fmt.Sprintf("expected at least %d fields, got %d", imageMinFields, len(fields)), line})
			return
		}

		section, ok := ParseSection(fields[0])
		if !ok {
			diags = append(diags, Diagnostic{lineNo, fmt.Sprintf("unknown section %q", strings.TrimSpace(fields[0])), line})
			return
		}

		position, ok := ParsePosition(fields[1])
		if !ok {
			diags = append(diags, Diagnostic{lineNo, fmt.Sprintf("unknown position %q", strings.TrimSpace(fields[1])), line})
			return
		}

		filename := strings.TrimSpace(fields[2])
		if filename == "" {
			diags = append(diags, Diagnostic{lineNo, "empty filename", line})
			return
		}

		altText := strings.TrimSpace(fields[3])
		if altText == "" {
			diags = append(diags, Diagnostic{lineNo, "empty alt text", line})
			return
		}

		entry := ImageEntry{Section: section, Position: position, Filename: filename, AltText: altText}
		if len(fields) > 4 {
			entry.Caption = strings.TrimSpace(fields[4])
		}
		entries = append(entries, entry)
	})

	return entries, diags
}

// forEachLine walks the content lines of a manifest, skipping blanks and
// '#' comments. The callback receives the 1-based line number and the
// trimmed line.
func forEachLine(text string, fn func(lineNo int, line string)) {
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fn(i+1, line)
	}
}
