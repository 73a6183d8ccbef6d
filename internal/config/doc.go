// Package config loads leaflet's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/leaflet/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing, empty or out of range, use defaults
//  5. LEAFLET_API_URL, when set, replaces api_url
//
// cmd/leaflet loads .env.local and .env before Load runs, so the variable can
// also live in a dotenv file next to the binary.
//
// # Fields
//
//	api_url                  = "http://localhost:8080"
//	log_dir                  = "~/.local/share/leaflet"
//	request_timeout_seconds  = 5
//	fetch_retries            = 2
//	requests_per_second      = 5    # 0 disables client-side limiting
//	refresh_seconds          = 0    # 0 refreshes only on demand
//	metrics_addr             = ""   # e.g. "127.0.0.1:9464"
//
// Paths support tilde expansion and are returned absolute. String values are
// trimmed before use.
//
// # Error Handling
//
// Load returns an error only when the file exists but cannot be read or is
// not valid TOML. Validate rejects an API URL without a host or with a scheme
// other than http or https.
package config
