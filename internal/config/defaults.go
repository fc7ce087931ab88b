package config

const (
	defaultLibraryDir         = "~/.local/share/cradle/library"
	defaultDataDir            = "~/.local/share/cradle/data"
	defaultLogDir             = "~/.local/share/cradle/logs"
	defaultAPIBind            = "127.0.0.1:7910"
	defaultMediaBaseURL       = "http://127.0.0.1:7910"
	defaultRequestTimeout     = 10
	defaultGraceDays          = 30
	defaultSweepIntervalHours = 24
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
			APIBind:    defaultAPIBind,
		},
		Media: Media{
			BaseURL:        defaultMediaBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Accounts: Accounts{
			GraceDays:          defaultGraceDays,
			SweepIntervalHours: defaultSweepIntervalHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
