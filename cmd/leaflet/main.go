package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/five82/leaflet/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional; LEAFLET_API_URL may come from either file.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	configPath := flag.String("config", "", "override leaflet config path (optional)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	refreshSeconds := flag.Int("refresh", 0, "auto-refresh interval in seconds (optional, disabled by default)")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address (optional)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		PrefsPath:   *prefsPath,
		MetricsAddr: *metricsAddr,
		Verbose:     *verbose,
	}
	if refresh := *refreshSeconds; refresh > 0 {
		opts.RefreshEvery = refresh
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "leaflet: %v\n", err)
		return 1
	}
	return 0
}
