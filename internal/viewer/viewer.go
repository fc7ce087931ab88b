package viewer

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"cradle/internal/assetcache"
	"cradle/internal/assets"
	"cradle/internal/logging"
)

// Loader resolves the media view for a story.
type Loader interface {
	Load(ctx context.Context, storyID int64) (assets.Media, error)
}

// Snapshot is the current visible media state.
type Snapshot struct {
	StoryID int64
	Media   assets.Media
	Loading bool
	Err     error
}

// Viewer serializes story switches over a shared cache and loader.
type Viewer struct {
	cache  *assetcache.Cache
	loader Loader
	logger *slog.Logger

	mu        sync.Mutex
	currentID int64
	cancel    context.CancelFunc
	snapshot  Snapshot
}

// New constructs a viewer over the given cache and loader.
func New(cache *assetcache.Cache, loader Loader, logger *slog.Logger) *Viewer {
	return &Viewer{
		cache:  cache,
		loader: loader,
		logger: logging.NewComponentLogger(logger, "viewer"),
	}
}

// Show makes storyID the current story and loads its media, blocking until
// the load finishes or is superseded by a later Show. A load already in
// flight for a previous story is cancelled. Show never returns an error;
// load failures are surfaced through the snapshot.
func (v *Viewer) Show(ctx context.Context, storyID int64) {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.currentID = storyID
	v.snapshot = Snapshot{StoryID: storyID, Loading: true}
	v.mu.Unlock()

	defer cancel()

	media, err := v.cache.GetOrLoad(loadCtx, storyID, v.loader.Load)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.currentID != storyID {
		// A later Show superseded this load; drop the result.
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		v.logger.Warn("story media load failed", logging.StoryID(storyID), logging.Error(err))
		v.snapshot = Snapshot{StoryID: storyID, Err: err}
		return
	}
	v.snapshot = Snapshot{StoryID: storyID, Media: media}
}

// Snapshot returns the current visible state.
func (v *Viewer) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}

// Refresh drops all cached media and reloads the current story.
func (v *Viewer) Refresh(ctx context.Context) {
	v.mu.Lock()
	storyID := v.currentID
	v.mu.Unlock()

	v.cache.Clear()
	if storyID != 0 {
		v.Show(ctx, storyID)
	}
}
