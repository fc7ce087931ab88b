package logging

import (
	"io"
	"log/slog"
	"os"

	"cradle/internal/config"
)

// NewFromConfig creates a logger using application config defaults. When a
// log directory is configured the daemon log file receives a copy of every
// record alongside stdout.
func NewFromConfig(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{})
	}

	var output io.Writer = os.Stdout
	if cfg.Paths.LogDir != "" {
		file, err := OpenLogFile(cfg.LogFilePath())
		if err != nil {
			return nil, err
		}
		output = io.MultiWriter(os.Stdout, file)
	}

	return New(Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: output,
	})
}
