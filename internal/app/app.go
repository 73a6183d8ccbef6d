package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/five82/leaflet/internal/bookstore"
	"github.com/five82/leaflet/internal/config"
	"github.com/five82/leaflet/internal/logging"
	"github.com/five82/leaflet/internal/prefs"
	"github.com/five82/leaflet/internal/ui"
)

const healthTimeout = 3 * time.Second

// Options configure the leaflet application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/leaflet/prefs.toml
	RefreshEvery int    // seconds; zero keeps the configured interval
	MetricsAddr  string // overrides metrics_addr when set
	Verbose      bool
}

// Run boots the leaflet TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.RefreshEvery > 0 {
		cfg.RefreshInterval = time.Duration(opts.RefreshEvery) * time.Second
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	closer, err := logging.Setup(cfg.LogDir, opts.Verbose)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	userPrefs := prefs.Load(opts.PrefsPath)

	metrics := bookstore.NewMetrics()
	client, err := bookstore.NewClient(cfg.APIURL,
		bookstore.WithTimeout(cfg.RequestTimeout),
		bookstore.WithRateLimit(cfg.RequestsPerSecond),
		bookstore.WithMetrics(metrics),
	)
	if err != nil {
		return fmt.Errorf("init bookstore client: %w", err)
	}

	log.Info().
		Str("api_url", client.BaseURL()).
		Dur("refresh", cfg.RefreshInterval).
		Int("retries", cfg.FetchRetries).
		Msg("leaflet starting")

	if cfg.MetricsAddr != "" {
		stop, err := serveMetrics(ctx, cfg.MetricsAddr, metrics)
		if err != nil {
			return err
		}
		defer stop()
	}

	checkHealth(ctx, client)

	err = ui.Run(ui.Options{
		Context:      ctx,
		Service:      NewFetcher(client, cfg.FetchRetries),
		APIURL:       client.BaseURL(),
		LogPath:      cfg.LogPath(),
		RefreshEvery: cfg.RefreshInterval,
		ThemeName:    userPrefs.Theme,
		SortKey:      userPrefs.Sort,
		PrefsPath:    opts.PrefsPath,
	})
	if errors.Is(err, tea.ErrProgramKilled) {
		// Context cancelled by a signal.
		err = nil
	}
	log.Info().Msg("leaflet stopped")
	return err
}

// checkHealth logs whether the API answers. An unhealthy API is not fatal:
// the UI shows the fetch error and the user can retry.
func checkHealth(ctx context.Context, client *bookstore.Client) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		log.Warn().Err(err).Str("api_url", client.BaseURL()).Msg("bookstore api unreachable")
		return false
	}
	if !health.Healthy() {
		log.Warn().Str("message", health.Message).Msg("bookstore api reports unhealthy")
		return false
	}
	log.Debug().Msg("bookstore api healthy")
	return true
}

// serveMetrics exposes the client metrics on addr. The returned func shuts
// the listener down.
func serveMetrics(ctx context.Context, addr string, metrics *bookstore.Metrics) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           metricsHandler(metrics),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	log.Info().Str("addr", ln.Addr().String()).Msg("metrics endpoint listening")

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}, nil
}

func metricsHandler(metrics *bookstore.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	return mux
}
