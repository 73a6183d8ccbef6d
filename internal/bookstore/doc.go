// Package bookstore provides an HTTP client for the bookstore catalog API.
//
// # Overview
//
// The client fetches the book collection consumed by the catalog browser and
// issues the few mutations the UI offers. It handles HTTP communication, JSON
// decoding and the typed representation of book records.
//
// # API Endpoints
//
// All catalog routes share the /api/v1 prefix under one base URL:
//
//   - GET /api/v1/books: the full catalog
//   - GET /api/v1/books/new: the most recently added books
//   - GET /api/v1/books/{id}: a single book
//   - DELETE /api/v1/books/{id}: remove a book
//   - GET /health: service health
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Wait on a token-bucket limiter (5 req/s by default, see WithRateLimit)
//   - Set Accept: application/json and User-Agent: leaflet/0.1 headers
//   - Record per-endpoint Prometheus metrics when WithMetrics is supplied
//
// # Error Handling
//
// Non-2xx responses are returned as *StatusError carrying the path and status.
// Transport and decode failures are wrapped with fmt.Errorf:
//
//   - "execute request: dial tcp: connection refused"
//   - "api /api/v1/books returned status 500"
//   - "decode response: unexpected end of JSON input"
//
// # Records
//
// Book.Category and Book.Reviews are optional on the wire and decode to their
// zero values. Prices are decimals. Book.Validate rejects records the catalog
// cannot index (missing title or author, negative price or reviews).
//
// The client performs no retries. Retry policy belongs to the caller.
package bookstore
