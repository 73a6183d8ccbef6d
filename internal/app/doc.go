// Package app is the composition root of leaflet.
//
// Run wires the pieces together in this order:
//
//  1. Load ~/.config/leaflet/config.toml (or defaults) and apply flag overrides
//  2. Route zerolog output to <log_dir>/leaflet.log
//  3. Load user preferences (theme, last sort)
//  4. Build the bookstore client with timeout, rate limit and metrics
//  5. Optionally serve /metrics for Prometheus
//  6. Probe /health once and log the outcome
//  7. Start the TUI and block until the user quits or the context ends
//
// Data flow at runtime:
//
//	ui.Model ──tea.Cmd──> Fetcher ──> bookstore.Client ──HTTP──> API
//	    ^                    │
//	    └──── booksMsg ──────┘ (retried, invalid records dropped)
//
// Fetcher retries reads with exponential backoff (500ms base, doubling, capped
// at 30s). Client errors (4xx except 408 and 429) and context cancellation are
// returned at once. Deletes are never retried.
//
// Startup failures (bad config, unwritable log dir, metrics port in use) are
// returned from Run. An unreachable API is not: the UI starts in the loading
// state and shows the error when the first fetch fails.
package app
