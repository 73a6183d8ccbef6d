package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/five82/leaflet/internal/bookstore"
	"github.com/five82/leaflet/internal/catalog"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short  ", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 2, "ab"},
		{"anything", 0, "anything"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("http://books.example.com:8080", 11); got != "http:…:8080" {
		t.Fatalf("truncateMiddle = %q, want http:…:8080", got)
	}
}

func TestSummaryLine(t *testing.T) {
	q := catalog.NewState()
	if got := summaryLine(q, 1); got != "1 book · Newest" {
		t.Fatalf("summaryLine default = %q", got)
	}

	q.SetCategory(catalog.CategoryFiction)
	q.SetSearchTerm("dune")
	q.SetSort(catalog.SortPopular)
	want := `14 books in Fiction matching "dune" · Most Popular`
	if got := summaryLine(q, 14); got != want {
		t.Fatalf("summaryLine = %q, want %q", got, want)
	}

	q.SetSearchTerm("dune ")
	want = `0 books in Fiction matching "dune " · Most Popular`
	if got := summaryLine(q, 0); got != want {
		t.Fatalf("summaryLine keeps whitespace = %q, want %q", got, want)
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if got := formatTimestamp(time.Time{}, now); got != "" {
		t.Fatalf("zero time = %q, want empty", got)
	}
	if got := formatTimestamp(now.Add(-10*time.Second), now); got != "11:59:50 (now)" {
		t.Fatalf("recent = %q", got)
	}
	if got := formatTimestamp(now.Add(-5*time.Minute), now); got != "11:55:00 (5m ago)" {
		t.Fatalf("minutes = %q", got)
	}
	if got := formatTimestamp(now.Add(-3*time.Hour), now); got != "09:00:00 (3h ago)" {
		t.Fatalf("hours = %q", got)
	}
	if got := formatTimestamp(now.Add(-48*time.Hour), now); got != "12:00:00" {
		t.Fatalf("days = %q", got)
	}
}

func TestClassifyConnectionError(t *testing.T) {
	cases := map[string]string{
		"dial tcp 127.0.0.1:8080: connect: connection refused": "OFFLINE",
		"dial tcp: lookup books.invalid: no such host":          "HOST NOT FOUND",
		"context deadline exceeded":                             "TIMEOUT",
		"api /api/v1/books returned status 500":                 "HTTP ERROR",
		"something else":                                        "ERROR",
	}
	for msg, want := range cases {
		if got := classifyConnectionError(errors.New(msg)); got != want {
			t.Fatalf("classifyConnectionError(%q) = %q, want %q", msg, got, want)
		}
	}
	if got := classifyConnectionError(nil); got != "" {
		t.Fatalf("classifyConnectionError(nil) = %q, want empty", got)
	}
}

func TestFormatPrice(t *testing.T) {
	book := bookstore.Book{Price: decimal.RequireFromString("12.5")}
	if got := formatPrice(book); got != "$12.50" {
		t.Fatalf("formatPrice = %q, want $12.50", got)
	}
}
