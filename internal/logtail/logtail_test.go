package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeLines(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leaflet.log")
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	path := writeLines(t, 10)

	tests := []struct {
		name     string
		maxLines int
		want     []string
	}{
		{"fewer than file", 3, []string{"line 8", "line 9", "line 10"}},
		{"exact", 10, nil},
		{"more than file", 50, nil},
		{"zero", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.maxLines)
			if err != nil {
				t.Fatalf("Read returned error: %v", err)
			}
			switch tt.name {
			case "exact", "more than file":
				if len(got) != 10 || got[0] != "line 1" || got[9] != "line 10" {
					t.Fatalf("Read = %v, want all 10 lines in order", got)
				}
			default:
				if len(got) != len(tt.want) {
					t.Fatalf("Read = %v, want %v", got, tt.want)
				}
				for i := range tt.want {
					if got[i] != tt.want[i] {
						t.Fatalf("Read[%d] = %q, want %q", i, got[i], tt.want[i])
					}
				}
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 5)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("Read = %v, want nil", got)
	}
}

func TestTail_ParsesZerologOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaflet.log")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(file).With().Timestamp().Str("app", "leaflet").Logger()
	logger.Warn().Str("fetch", "catalog").Int("attempt", 1).Msg("retrying fetch")
	logger.Info().Int64("book_id", 7).Msg("book deleted")
	_ = file.Close()

	entries, err := Tail(path, 10)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Tail len = %d, want 2", len(entries))
	}

	first := entries[0]
	if first.Level != "warn" || first.Message != "retrying fetch" {
		t.Fatalf("entries[0] = %#v, want warn retrying fetch", first)
	}
	if len(first.Fields) != 2 || first.Fields[0].Key != "attempt" || first.Fields[1].Key != "fetch" {
		t.Fatalf("entries[0].Fields = %#v, want attempt,fetch sorted", first.Fields)
	}
	if time.Since(first.Time) > time.Minute {
		t.Fatalf("entries[0].Time = %v, want recent", first.Time)
	}

	formatted := entries[1].Format()
	if !strings.Contains(formatted, "INF book deleted book_id=7") {
		t.Fatalf("Format = %q, want level, message and field", formatted)
	}
}

func TestParse_NonJSONLine(t *testing.T) {
	e := Parse("  plain text  ")
	if e.Message != "plain text" || e.Level != "" {
		t.Fatalf("Parse = %#v, want raw message", e)
	}
	if got := e.Format(); got != "--- plain text" {
		t.Fatalf("Format = %q, want %q", got, "--- plain text")
	}
}

func TestLevelTag(t *testing.T) {
	cases := map[string]string{
		"debug": "DBG",
		"info":  "INF",
		"warn":  "WRN",
		"error": "ERR",
		"":      "---",
	}
	for level, want := range cases {
		if got := (Entry{Level: level}).LevelTag(); got != want {
			t.Fatalf("LevelTag(%q) = %q, want %q", level, got, want)
		}
	}
}
