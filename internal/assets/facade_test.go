package assets

import (
	"testing"

	"cradle/internal/manifest"
)

func TestHasAudioForSection(t *testing.T) {
	media := Build([]manifest.AudioEntry{
		{Section: manifest.SectionIntroduction, Part: 1, Filename: "a.mp3"},
	}, nil)

	if !media.HasAudioForSection(manifest.SectionIntroduction) {
		t.Error("expected audio for introduction")
	}
	if media.HasAudioForSection(manifest.SectionIntegration) {
		t.Error("expected no audio for integration")
	}
}

func TestHasImagesForSection(t *testing.T) {
	media := Build(nil, []manifest.ImageEntry{
		{Section: manifest.SectionCoreContent, Position: manifest.PositionBefore, Filename: "x.png", AltText: "x"},
	})

	if !media.HasImagesForSection(manifest.SectionCoreContent) {
		t.Error("expected images for coreContent")
	}
	if media.HasImagesForSection(manifest.SectionInteractive) {
		t.Error("expected no images for interactiveSection")
	}
}

func TestImagesAtFiltersByPosition(t *testing.T) {
	media := Build(nil, []manifest.ImageEntry{
		{Section: manifest.SectionCoreContent, Position: manifest.PositionBefore, Filename: "b.png", AltText: "b"},
		{Section: manifest.SectionCoreContent, Position: manifest.PositionInline, Filename: "i.png", AltText: "i"},
		{Section: manifest.SectionCoreContent, Position: manifest.PositionBefore, Filename: "b2.png", AltText: "b2"},
	})

	before := media.ImagesAt(manifest.SectionCoreContent, manifest.PositionBefore)
	if len(before) != 2 || before[0].Filename != "b.png" || before[1].Filename != "b2.png" {
		t.Errorf("unexpected before images: %v", before)
	}
	inline := media.ImagesAt(manifest.SectionCoreContent, manifest.PositionInline)
	if len(inline) != 1 {
		t.Errorf("unexpected inline images: %v", inline)
	}
}

func TestURLConstruction(t *testing.T) {
	if got := AudioURL(5, "intro-part1.mp3"); got != "/audio/stories/5/intro-part1.mp3" {
		t.Errorf("AudioURL: %q", got)
	}
	if got := ImageURL(12, "calm.png"); got != "/images/stories/12/calm.png" {
		t.Errorf("ImageURL: %q", got)
	}
	if got := AudioManifestURL(99); got != "/audio/stories/99/manifest.txt" {
		t.Errorf("AudioManifestURL: %q", got)
	}
	if got := ImageManifestURL(99); got != "/images/stories/99/manifest.txt" {
		t.Errorf("ImageManifestURL: %q", got)
	}
}
