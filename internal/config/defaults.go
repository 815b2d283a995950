package config

const (
	defaultCacheDir            = "~/.cache/nextread"
	defaultLogDir              = "~/.local/share/nextread/logs"
	defaultCacheTTLDays        = 30
	defaultMaxConcurrent       = 10
	defaultStaggerMS           = 50
	defaultDebounceSeconds     = 1
	defaultVisibilityThreshold = 0.1
	defaultCardSelector        = "div.bookContainer"
	defaultSourceBaseURL       = "https://www.goodreads.com"
	defaultSourceTimeout       = 15
	defaultUserAgent           = "nextread/dev"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		Cache: Cache{
			TTLDays: defaultCacheTTLDays,
		},
		Scheduler: Scheduler{
			MaxConcurrent: defaultMaxConcurrent,
			StaggerMS:     defaultStaggerMS,
		},
		Scan: Scan{
			DebounceSeconds:     defaultDebounceSeconds,
			VisibilityThreshold: defaultVisibilityThreshold,
			CardSelector:        defaultCardSelector,
		},
		Source: Source{
			BaseURL:        defaultSourceBaseURL,
			RequestTimeout: defaultSourceTimeout,
			UserAgent:      defaultUserAgent,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
