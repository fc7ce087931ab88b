package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cradle/internal/assetcache"
	"cradle/internal/assets"
	"cradle/internal/manifest"
)

// scriptedLoader resolves media per story ID, optionally blocking a story's
// load until released.
type scriptedLoader struct {
	mu      sync.Mutex
	started map[int64]chan struct{}
	blocked map[int64]chan struct{}
	errs    map[int64]error
}

func newScriptedLoader() *scriptedLoader {
	return &scriptedLoader{
		started: make(map[int64]chan struct{}),
		blocked: make(map[int64]chan struct{}),
		errs:    make(map[int64]error),
	}
}

func (l *scriptedLoader) block(storyID int64) (started, release chan struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	started = make(chan struct{})
	release = make(chan struct{})
	l.started[storyID] = started
	l.blocked[storyID] = release
	return started, release
}

func (l *scriptedLoader) fail(storyID int64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs[storyID] = err
}

func (l *scriptedLoader) Load(ctx context.Context, storyID int64) (assets.Media, error) {
	l.mu.Lock()
	started := l.started[storyID]
	release := l.blocked[storyID]
	failure := l.errs[storyID]
	l.mu.Unlock()

	if started != nil {
		close(started)
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return assets.Media{}, ctx.Err()
		}
	}
	if failure != nil {
		return assets.Media{}, failure
	}

	media := assets.Build([]manifest.AudioEntry{
		{Section: manifest.SectionIntroduction, Part: 1, Filename: fmt.Sprintf("story-%d.mp3", storyID)},
	}, nil)
	return media, nil
}

func introFilename(media assets.Media) string {
	group, ok := media.SectionAudio(manifest.SectionIntroduction)
	if !ok || len(group.Parts) == 0 {
		return ""
	}
	return group.Parts[0].Filename
}

func TestShowLoadsMedia(t *testing.T) {
	v := New(assetcache.New(nil), newScriptedLoader(), nil)

	v.Show(context.Background(), 5)

	snap := v.Snapshot()
	if snap.StoryID != 5 || snap.Loading || snap.Err != nil {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if introFilename(snap.Media) != "story-5.mp3" {
		t.Errorf("wrong media: %q", introFilename(snap.Media))
	}
}

func TestShowReportsLoadingWhileInFlight(t *testing.T) {
	loader := newScriptedLoader()
	started, release := loader.block(3)
	v := New(assetcache.New(nil), loader, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		v.Show(context.Background(), 3)
	}()

	<-started
	snap := v.Snapshot()
	if !snap.Loading || snap.StoryID != 3 {
		t.Errorf("expected loading snapshot for story 3, got %+v", snap)
	}

	close(release)
	<-done

	snap = v.Snapshot()
	if snap.Loading {
		t.Error("snapshot still loading after Show returned")
	}
}

func TestStaleResponseSuppressed(t *testing.T) {
	loader := newScriptedLoader()
	startedA, releaseA := loader.block(1)
	v := New(assetcache.New(nil), loader, nil)

	doneA := make(chan struct{})
	go func() {
		defer close(doneA)
		v.Show(context.Background(), 1)
	}()
	<-startedA

	// Story 2 is requested while story 1 is still in flight and resolves
	// first.
	v.Show(context.Background(), 2)

	close(releaseA)
	<-doneA

	snap := v.Snapshot()
	if snap.StoryID != 2 {
		t.Fatalf("expected story 2 visible, got %d", snap.StoryID)
	}
	if introFilename(snap.Media) != "story-2.mp3" {
		t.Errorf("stale media leaked into snapshot: %q", introFilename(snap.Media))
	}
}

func TestSupersededLoadIsCancelled(t *testing.T) {
	loader := newScriptedLoader()
	startedA, _ := loader.block(1)
	v := New(assetcache.New(nil), loader, nil)

	doneA := make(chan struct{})
	go func() {
		defer close(doneA)
		v.Show(context.Background(), 1)
	}()
	<-startedA

	v.Show(context.Background(), 2)

	// Story 1's load blocks on a release that never comes; only the
	// cancellation from the second Show lets it finish.
	select {
	case <-doneA:
	case <-time.After(5 * time.Second):
		t.Fatal("superseded load was not cancelled")
	}

	if snap := v.Snapshot(); snap.StoryID != 2 {
		t.Errorf("expected story 2 visible, got %d", snap.StoryID)
	}
}

func TestLoadFailureSurfacesInSnapshot(t *testing.T) {
	loader := newScriptedLoader()
	loadErr := errors.New("catalog offline")
	loader.fail(4, loadErr)
	v := New(assetcache.New(nil), loader, nil)

	v.Show(context.Background(), 4)

	snap := v.Snapshot()
	if !errors.Is(snap.Err, loadErr) {
		t.Errorf("expected load error in snapshot, got %v", snap.Err)
	}
}

func TestShowUsesCacheOnRepeat(t *testing.T) {
	loader := newScriptedLoader()
	cache := assetcache.New(nil)
	v := New(cache, loader, nil)

	v.Show(context.Background(), 6)
	if cache.Len() != 1 {
		t.Fatalf("expected cached story, len=%d", cache.Len())
	}

	// Second Show must resolve from cache even if the loader would block.
	loader.block(6)
	done := make(chan struct{})
	go func() {
		defer close(done)
		v.Show(context.Background(), 6)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("repeat Show should not hit the loader")
	}
}

func TestRefreshClearsCacheAndReloads(t *testing.T) {
	loader := newScriptedLoader()
	cache := assetcache.New(nil)
	v := New(cache, loader, nil)

	v.Show(context.Background(), 8)
	v.Refresh(context.Background())

	snap := v.Snapshot()
	if snap.StoryID != 8 || snap.Err != nil {
		t.Errorf("unexpected snapshot after refresh: %+v", snap)
	}
	if cache.Len() != 1 {
		t.Errorf("expected reloaded entry in cache, len=%d", cache.Len())
	}
}
