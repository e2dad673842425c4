package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The upstream extractor emits the literal string "NULL" when a field has no
// value. Each coercer treats that placeholder, an empty string, and a missing
// (nil) value identically.

const nullPlaceholder = "NULL"

func isPlaceholder(v any) bool {
	if v == nil {
		return true
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s == "" || strings.EqualFold(s, nullPlaceholder)
}

// ToDate parses a strict YYYY-MM-DD literal. Anything else, including the
// placeholder, yields nil. No timezone handling.
func ToDate(v any) *time.Time {
	if isPlaceholder(v) {
		return nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(fmt.Sprintf("%v", v)))
	if err != nil {
		return nil
	}
	return &t
}

// ToDecimal coerces a monetary field. Placeholders become zero; malformed
// non-placeholder text is a hard ingestion error and aborts the write.
func ToDecimal(v any) (decimal.Decimal, error) {
	if isPlaceholder(v) {
		return decimal.Zero, nil
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), nil
	case float32:
		return decimal.NewFromFloat32(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(fmt.Sprintf("%v", v)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed numeric value %q: %w", fmt.Sprintf("%v", v), err)
	}
	return d, nil
}

// ToText returns the value as text, or nil for the placeholder.
func ToText(v any) *string {
	if isPlaceholder(v) {
		return nil
	}
	s := fmt.Sprintf("%v", v)
	return &s
}

// ToInteger coerces a count field. Placeholders and unparsable text both
// degrade to zero. This deliberately differs from ToDecimal: an unreadable
// quantity is recoverable, an unreadable amount is not.
func ToInteger(v any) int {
	if isPlaceholder(v) {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	}
	i, err := strconv.Atoi(strings.TrimSpace(fmt.Sprintf("%v", v)))
	if err != nil {
		return 0
	}
	return i
}
