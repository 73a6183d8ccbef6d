package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds leaflet's runtime settings.
type Config struct {
	APIURL            string
	LogDir            string
	RequestTimeout    time.Duration
	FetchRetries      int
	RequestsPerSecond int
	RefreshInterval   time.Duration // zero disables periodic refresh
	MetricsAddr       string        // empty disables the metrics endpoint
}

// APIURLEnv overrides api_url when set.
const APIURLEnv = "LEAFLET_API_URL"

const (
	defaultConfigPath        = "~/.config/leaflet/config.toml"
	defaultLogDir            = "~/.local/share/leaflet"
	defaultAPIURL            = "http://localhost:8080"
	defaultRequestTimeout    = 5 * time.Second
	defaultFetchRetries      = 2
	defaultRequestsPerSecond = 5
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:            defaultAPIURL,
		LogDir:            mustExpand(defaultLogDir),
		RequestTimeout:    defaultRequestTimeout,
		FetchRetries:      defaultFetchRetries,
		RequestsPerSecond: defaultRequestsPerSecond,
	}
}

// Load locates and parses the leaflet config, falling back to defaults when missing.
// The LEAFLET_API_URL environment variable takes precedence over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL            string `toml:"api_url"`
		LogDir            string `toml:"log_dir"`
		RequestTimeout    *int   `toml:"request_timeout_seconds"`
		FetchRetries      *int   `toml:"fetch_retries"`
		RequestsPerSecond *int   `toml:"requests_per_second"`
		RefreshSeconds    *int   `toml:"refresh_seconds"`
		MetricsAddr       string `toml:"metrics_addr"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if raw.RequestTimeout != nil && *raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(*raw.RequestTimeout) * time.Second
	}
	if raw.FetchRetries != nil && *raw.FetchRetries >= 0 {
		cfg.FetchRetries = *raw.FetchRetries
	}
	if raw.RequestsPerSecond != nil && *raw.RequestsPerSecond >= 0 {
		cfg.RequestsPerSecond = *raw.RequestsPerSecond
	}
	if raw.RefreshSeconds != nil && *raw.RefreshSeconds > 0 {
		cfg.RefreshInterval = time.Duration(*raw.RefreshSeconds) * time.Second
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(APIURLEnv)); v != "" {
		cfg.APIURL = v
	}
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	raw := strings.TrimSpace(c.APIURL)
	if raw == "" {
		return fmt.Errorf("api_url is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("api_url %q: %w", c.APIURL, err)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url %q has no host", c.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url %q: unsupported scheme %q", c.APIURL, u.Scheme)
	}
	return nil
}

// LogPath returns the path of leaflet's log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/leaflet.log")
	}
	return filepath.Join(c.LogDir, "leaflet.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
