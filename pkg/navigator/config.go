package navigator

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"github.com/BrandonKowalski/navigator/pkg/navigator/content"
	"github.com/BrandonKowalski/navigator/pkg/navigator/internal"
	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration written as a string ("16ms") in config files.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds the settings of a navigator application.
type Config struct {
	DefaultAnimation string   `toml:"default_animation"` // Animation used when a push names none
	InsertDelay      Duration `toml:"insert_delay"`      // Pause between binding a page and inserting it
	CacheSize        int      `toml:"cache_size"`        // Number of templates kept in memory
	TemplateDir      string   `toml:"template_dir"`      // Directory templates are read from
	BaseURL          string   `toml:"base_url"`          // Templates are fetched over HTTP when set, taking precedence over TemplateDir
	Manifest         string   `toml:"manifest"`          // Optional YAML manifest of templates to preload
	Language         string   `toml:"language"`          // Preferred language for toolbar labels
	LogLevel         string   `toml:"log_level"`         // debug, info, warn or error
	LogPath          string   `toml:"log_path"`          // Full path of the log file; stderr only when empty
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		DefaultAnimation: constants.AnimatorDefault,
		InsertDelay:      Duration{constants.DefaultInsertDelay},
		CacheSize:        constants.DefaultCacheSize,
		LogLevel:         "info",
	}
}

// LoadConfig reads a TOML config file on top of DefaultConfig and applies
// environment overrides. An empty path only applies the overrides.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return cfg, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if constants.IsDevMode() {
		c.LogLevel = "debug"
	}
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(constants.LogPathEnvVar); v != "" {
		c.LogPath = v
	}
	if v := os.Getenv(constants.LanguageEnvVar); v != "" {
		c.Language = v
	}
}

// Apply configures logging. It must run before the first logger is
// requested for LogPath to take effect.
func (c Config) Apply() {
	if c.LogPath != "" {
		internal.SetLogPath(c.LogPath)
	}

	level := internal.ParseLevel(c.LogLevel)
	internal.SetLogLevel(level)

	if constants.IsDevMode() || level == slog.LevelDebug {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}
}

// Resolver builds the content resolver described by the config.
func (c Config) Resolver() (*content.Resolver, error) {
	var fetcher content.Fetcher
	switch {
	case c.BaseURL != "":
		fetcher = content.NewHTTPFetcher(c.BaseURL)
	case c.TemplateDir != "":
		fetcher = &content.DirFetcher{Root: os.DirFS(c.TemplateDir)}
	}

	size := c.CacheSize
	if size <= 0 {
		size = constants.DefaultCacheSize
	}
	resolver := content.NewResolver(fetcher, content.WithCache(content.NewCacheWithSize(size)))

	if c.Manifest != "" {
		f, err := os.Open(c.Manifest)
		if err != nil {
			return nil, fmt.Errorf("open manifest: %w", err)
		}
		defer f.Close()

		m, err := content.LoadManifest(f)
		if err != nil {
			return nil, err
		}
		resolver.PreloadManifest(m)
	}

	return resolver, nil
}

// Options converts the config into navigator options.
func (c Config) Options() ([]Option, error) {
	opts := []Option{
		WithInsertDelay(c.InsertDelay.Duration),
	}
	if c.DefaultAnimation != "" {
		opts = append(opts, WithDefaultAnimation(c.DefaultAnimation))
	}

	var langs []string
	if c.Language != "" {
		langs = append(langs, c.Language)
	}
	localizer, err := NewLocalizer(langs...)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithLocalizer(localizer))

	return opts, nil
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before the first logger is requested.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// CloseLogger closes the log file, if one was opened.
func CloseLogger() {
	internal.CloseLogger()
}
