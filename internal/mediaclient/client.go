package mediaclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"cradle/internal/assets"
	"cradle/internal/config"
	"cradle/internal/logging"
	"cradle/internal/manifest"
)

// HTTPDoer describes the HTTP client used by the media client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client resolves story manifests against a cradle media server.
type Client struct {
	baseURL string
	http    HTTPDoer
	logger  *slog.Logger
}

// New constructs a media client. A nil doer falls back to
// http.DefaultClient.
func New(baseURL string, doer HTTPDoer, logger *slog.Logger) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    doer,
		logger:  logging.NewComponentLogger(logger, "mediaclient"),
	}
}

// NewFromConfig constructs a media client with a request timeout from
// configuration.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Client {
	if cfg == nil {
		return New("", nil, logger)
	}
	doer := &http.Client{Timeout: time.Duration(cfg.Media.RequestTimeout) * time.Second}
	return New(cfg.Media.BaseURL, doer, logger)
}

// FetchAudioManifest retrieves and parses a story's audio manifest.
func (c *Client) FetchAudioManifest(ctx context.Context, storyID int64) ([]manifest.AudioEntry, error) {
	text, err := c.fetchManifest(ctx, storyID, assets.AudioManifestURL(storyID))
	if err != nil {
		return nil, err
	}
	entries, diags := manifest.ParseAudio(text)
	c.logDiagnostics(storyID, "audio", diags)
	return entries, nil
}

// FetchImageManifest retrieves and parses a story's image manifest.
func (c *Client) FetchImageManifest(ctx context.Context, storyID int64) ([]manifest.ImageEntry, error) {
	text, err := c.fetchManifest(ctx, storyID, assets.ImageManifestURL(storyID))
	if err != nil {
		return nil, err
	}
	entries, diags := manifest.ParseImage(text)
	c.logDiagnostics(storyID, "image", diags)
	return entries, nil
}

// Load fetches both manifests concurrently and builds the per-section media
// view. The signature matches assetcache.LoadFunc.
func (c *Client) Load(ctx context.Context, storyID int64) (assets.Media, error) {
	var (
		wg       sync.WaitGroup
		audio    []manifest.AudioEntry
		images   []manifest.ImageEntry
		audioErr error
		imageErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		audio, audioErr = c.FetchAudioManifest(ctx, storyID)
	}()
	go func() {
		defer wg.Done()
		images, imageErr = c.FetchImageManifest(ctx, storyID)
	}()
	wg.Wait()

	if audioErr != nil {
		return assets.Media{}, audioErr
	}
	if imageErr != nil {
		return assets.Media{}, imageErr
	}
	return assets.Build(audio, images), nil
}

// fetchManifest returns the manifest text, or "" when the story has no such
// manifest or the fetch failed in a way the degrade-to-empty policy absorbs.
// The returned error is non-nil only for context cancellation.
func (c *Client) fetchManifest(ctx context.Context, storyID int64, path string) (string, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build manifest request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Warn("manifest fetch failed",
			logging.StoryID(storyID),
			logging.String("url", url),
			logging.Error(err))
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Normal signal: this story has no media of this kind.
		return "", nil
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("manifest fetch returned unexpected status",
			logging.StoryID(storyID),
			logging.String("url", url),
			logging.Int("status", resp.StatusCode))
		return "", nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Warn("manifest read failed",
			logging.StoryID(storyID),
			logging.String("url", url),
			logging.Error(err))
		return "", nil
	}

	return string(body), nil
}

func (c *Client) logDiagnostics(storyID int64, kind string, diags []manifest.Diagnostic) {
	for _, diag := range diags {
		c.logger.Warn("skipped malformed manifest line",
			logging.StoryID(storyID),
			logging.String("manifest", kind),
			logging.Int("line", diag.Line),
			logging.String("reason", diag.Reason))
	}
}
