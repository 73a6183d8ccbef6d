package bookstore

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

const bookstoreTimestampLayout = "2006-01-02 15:04:05"

// Book mirrors one record of /api/v1/books. Category and Reviews are optional
// on the wire and decode to their zero values when absent.
type Book struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	ISBN      string          `json:"isbn"`
	Year      int             `json:"year"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Reviews   int             `json:"reviews"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// Validate checks the record invariants the catalog relies on.
func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required.Error("title is required")),
		validation.Field(&b.Author, validation.Required.Error("author is required")),
		validation.Field(&b.Price, validation.By(nonNegativeDecimal)),
		validation.Field(&b.Reviews, validation.Min(0).Error("reviews cannot be negative")),
	)
}

func nonNegativeDecimal(value any) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal")
	}
	if d.IsNegative() {
		return errors.New("cannot be negative")
	}
	return nil
}

// HasCategory reports whether the record carries a category.
func (b Book) HasCategory() bool {
	return strings.TrimSpace(b.Category) != ""
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (b Book) ParsedCreatedAt() time.Time {
	return parseTime(b.CreatedAt)
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (b Book) ParsedUpdatedAt() time.Time {
	return parseTime(b.UpdatedAt)
}

// HealthResponse mirrors /health.
type HealthResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Healthy reports whether the service declared itself healthy.
func (h HealthResponse) Healthy() bool {
	return strings.EqualFold(strings.TrimSpace(h.Message), "healthy")
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(bookstoreTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
