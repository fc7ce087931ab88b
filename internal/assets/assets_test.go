package assets

import (
	"testing"

	"cradle/internal/manifest"
)

func TestBuildAudioGroupsAndSorts(t *testing.T) {
	entries, diags := manifest.ParseAudio("introduction|1|a.mp3\nintroduction|2|b.mp3")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	groups := BuildAudio(entries)
	group, ok := groups[manifest.SectionIntroduction]
	if !ok {
		t.Fatal("expected introduction group")
	}
	if group.TotalParts != 2 {
		t.Errorf("TotalParts mismatch: got %d", group.TotalParts)
	}
	if group.Parts[0].Filename != "a.mp3" || group.Parts[1].Filename != "b.mp3" {
		t.Errorf("part order wrong: %v", group.Parts)
	}
}

func TestBuildAudioSortsRegardlessOfInputOrder(t *testing.T) {
	entries := []manifest.AudioEntry{
		{Section: manifest.SectionCoreContent, Part: 7, Filename: "g.mp3"},
		{Section: manifest.SectionCoreContent, Part: 2, Filename: "b.mp3"},
		{Section: manifest.SectionCoreContent, Part: 4, Filename: "d.mp3"},
	}

	groups := BuildAudio(entries)
	group := groups[manifest.SectionCoreContent]
	want := []int{2, 4, 7}
	for i, part := range want {
		if group.Parts[i].Part != part {
			t.Errorf("part %d: got %d, want %d", i, group.Parts[i].Part, part)
		}
	}
}

func TestBuildAudioIdempotent(t *testing.T) {
	entries := []manifest.AudioEntry{
		{Section: manifest.SectionIntroduction, Part: 3, Filename: "c.mp3"},
		{Section: manifest.SectionIntroduction, Part: 1, Filename: "a.mp3"},
	}

	first := BuildAudio(entries)
	second := BuildAudio(entries)
	if len(first) != len(second) {
		t.Fatalf("group counts differ: %d vs %d", len(first), len(second))
	}
	for section, group := range first {
		other := second[section]
		if group.TotalParts != other.TotalParts {
			t.Errorf("section %s: totals differ", section)
		}
		for i := range group.Parts {
			if group.Parts[i] != other.Parts[i] {
				t.Errorf("section %s part %d differs", section, i)
			}
		}
	}
}

func TestBuildImagesPreservesOrder(t *testing.T) {
	entries := []manifest.ImageEntry{
		{Section: manifest.SectionIntroduction, Position: manifest.PositionInline, Filename: "one.png", AltText: "1"},
		{Section: manifest.SectionIntroduction, Position: manifest.PositionInline, Filename: "two.png", AltText: "2"},
		{Section: manifest.SectionIntegration, Position: manifest.PositionAfter, Filename: "last.png", AltText: "3"},
	}

	groups := BuildImages(entries)
	intro := groups[manifest.SectionIntroduction]
	if len(intro) != 2 || intro[0].Filename != "one.png" || intro[1].Filename != "two.png" {
		t.Errorf("introduction images out of order: %v", intro)
	}
	if len(groups[manifest.SectionIntegration]) != 1 {
		t.Errorf("integration images: %v", groups[manifest.SectionIntegration])
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	media := Build(nil, nil)
	if len(media.Audio) != 0 || len(media.Images) != 0 {
		t.Errorf("expected empty media, got %+v", media)
	}
}
