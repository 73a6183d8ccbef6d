// Package logging routes leaflet's structured logs to a file. The terminal
// belongs to the TUI, so nothing is written to stderr once Setup succeeds.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FileName is the log file created inside the log directory.
const FileName = "leaflet.log"

// Setup opens <dir>/leaflet.log for appending and installs it as the global
// zerolog logger. The returned closer releases the file.
func Setup(dir string, verbose bool) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(file).With().Timestamp().Str("app", "leaflet").Logger()
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return file, nil
}

// Discard silences the global logger.
func Discard() {
	log.Logger = zerolog.Nop()
}
