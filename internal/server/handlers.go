package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cradle/internal/assets"
	"cradle/internal/catalog"
	"cradle/internal/logging"
	"cradle/internal/logs"
	"cradle/internal/manifest"
)

// handleMediaFile serves "{kind}/stories/{id}/{filename}" from the library
// directory, manifest.txt included.
func (s *Server) handleMediaFile(kind string) http.HandlerFunc {
	prefix := "/" + kind + "/stories/"
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		rest := strings.TrimPrefix(r.URL.Path, prefix)
		idStr, filename, ok := strings.Cut(rest, "/")
		if !ok {
			http.NotFound(w, r)
			return
		}
		storyID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || storyID < 1 {
			http.NotFound(w, r)
			return
		}
		// Reject traversal and nested paths outright.
		if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(s.libraryDir, kind, idStr, filename)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, path)
	}
}

type storyView struct {
	ID      int64  `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Week    int    `json:"week"`
	Summary string `json:"summary,omitempty"`
}

type storyListResponse struct {
	Stories []storyView `json:"stories"`
}

type storyMediaResponse struct {
	Story storyView    `json:"story"`
	Media assets.Media `json:"media"`
}

type statusResponse struct {
	Running    bool   `json:"running"`
	PID        int    `json:"pid"`
	UptimeSecs int64  `json:"uptime_seconds"`
	LibraryDir string `json:"library_dir"`
	Stories    int    `json:"stories"`
}

func toStoryView(story catalog.Story) storyView {
	return storyView{
		ID:      story.ID,
		Slug:    story.Slug,
		Title:   story.Title,
		Week:    story.Week,
		Summary: story.Summary,
	}
}

func (s *Server) handleStories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	stories, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	views := make([]storyView, 0, len(stories))
	for _, story := range stories {
		views = append(views, toStoryView(story))
	}
	s.writeJSON(w, http.StatusOK, storyListResponse{Stories: views})
}

// handleStoryMedia answers /api/stories/{id}/media with the server-side
// resolved media view, built from the manifests on disk.
func (s *Server) handleStoryMedia(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/stories/")
	idStr, tail, _ := strings.Cut(rest, "/")
	if tail != "media" {
		http.NotFound(w, r)
		return
	}
	storyID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid story id")
		return
	}

	story, err := s.store.GetByID(r.Context(), storyID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "story not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	media := s.resolveMedia(storyID)
	s.writeJSON(w, http.StatusOK, storyMediaResponse{Story: toStoryView(*story), Media: media})
}

// resolveMedia builds the media view from the manifests on disk. Missing
// manifests mean no media; malformed lines are skipped with a warning.
func (s *Server) resolveMedia(storyID int64) assets.Media {
	idStr := strconv.FormatInt(storyID, 10)

	audioText := s.readManifest(filepath.Join(s.libraryDir, "audio", idStr, "manifest.txt"))
	imageText := s.readManifest(filepath.Join(s.libraryDir, "images", idStr, "manifest.txt"))

	audio, audioDiags := manifest.ParseAudio(audioText)
	images, imageDiags := manifest.ParseImage(imageText)
	for _, diag := range append(audioDiags, imageDiags...) {
		s.logger.Warn("skipped malformed manifest line",
			logging.StoryID(storyID),
			logging.Int("line", diag.Line),
			logging.String("reason", diag.Reason))
	}

	return assets.Build(audio, images)
}

func (s *Server) readManifest(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("manifest read failed", logging.String("path", path), logging.Error(err))
		}
		return ""
	}
	return string(data)
}

type logsResponse struct {
	Lines  []string `json:"lines"`
	Offset int64    `json:"offset"`
}

const (
	defaultLogLimit = 100
	// Stays under the server's write timeout.
	maxLogWait = 25 * time.Second
)

// handleLogs answers /api/logs with lines from the daemon log file. Without
// an offset the last "limit" lines are returned; with one, reading resumes
// there, blocking up to "wait_ms" for new lines.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	opts := logs.TailOptions{Offset: -1, Limit: defaultLogLimit}
	query := r.URL.Query()
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || offset < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		opts.Offset = offset
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		opts.Limit = limit
	}
	if raw := query.Get("wait_ms"); raw != "" {
		waitMS, err := strconv.Atoi(raw)
		if err != nil || waitMS < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid wait_ms")
			return
		}
		opts.Wait = time.Duration(waitMS) * time.Millisecond
		if opts.Wait > maxLogWait {
			opts.Wait = maxLogWait
		}
	}

	result, err := logs.Tail(r.Context(), s.logPath, opts)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result.Lines == nil {
		result.Lines = []string{}
	}
	s.writeJSON(w, http.StatusOK, logsResponse{Lines: result.Lines, Offset: result.Offset})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	storyCount := 0
	if s.store != nil {
		if stories, err := s.store.List(r.Context()); err == nil {
			storyCount = len(stories)
		}
	}

	var uptime int64
	if !s.startedAt.IsZero() {
		uptime = int64(time.Since(s.startedAt).Seconds())
	}

	s.writeJSON(w, http.StatusOK, statusResponse{
		Running:    true,
		PID:        os.Getpid(),
		UptimeSecs: uptime,
		LibraryDir: s.libraryDir,
		Stories:    storyCount,
	})
}
