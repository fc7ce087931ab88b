package assetcache

import (
	"context"
	"log/slog"
	"sync"

	"cradle/internal/assets"
	"cradle/internal/logging"
)

// LoadFunc produces the media view for a story on a cache miss.
type LoadFunc func(ctx context.Context, storyID int64) (assets.Media, error)

// Cache provides thread-safe memoization of resolved story media.
type Cache struct {
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[int64]assets.Media
}

// New creates an empty cache.
func New(logger *slog.Logger) *Cache {
	return &Cache{
		logger:  logging.NewComponentLogger(logger, "assetcache"),
		entries: make(map[int64]assets.Media),
	}
}

// Get returns the cached media for a story, if present.
func (c *Cache) Get(storyID int64) (assets.Media, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	media, ok := c.entries[storyID]
	return media, ok
}

// GetOrLoad returns the cached media for a story, invoking load on a miss
// and storing the result.
//
// The load runs outside the lock, so two concurrent misses for the same
// story may both load; the rebuild is deterministic and side-effect-free,
// so last write wins and the only cost is a redundant fetch.
func (c *Cache) GetOrLoad(ctx context.Context, storyID int64, load LoadFunc) (assets.Media, error) {
	if media, ok := c.Get(storyID); ok {
		return media, nil
	}

	media, err := load(ctx, storyID)
	if err != nil {
		return assets.Media{}, err
	}

	c.Put(storyID, media)
	c.logger.Debug("cached story media",
		logging.StoryID(storyID),
		logging.Int("audio_sections", len(media.Audio)),
		logging.Int("image_sections", len(media.Images)))
	return media, nil
}

// Put stores media for a story, replacing any previous value wholesale.
func (c *Cache) Put(storyID int64, media assets.Media) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[storyID] = media
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int64]assets.Media)
	c.logger.Debug("cleared asset cache")
}

// Len returns the number of cached stories.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
