package utils

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const ukDateLayout = "02/01/2006"

// isoLayouts are the shapes the backend emits for date fields: bare ISO
// dates for week boundaries and RFC 3339 for record timestamps.
var isoLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// FormatDate renders a backend date string as DD/MM/YYYY in UTC.
// Example: "2026-01-27" returns "27/01/2026".
// Unparseable input returns the literal "Invalid Date".
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(ukDateLayout)
		}
	}
	return "Invalid Date"
}

// FormatDateTime renders a timestamp as DD/MM/YYYY HH:MM in UTC, or
// "Invalid Date" for the zero time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "Invalid Date"
	}
	return t.UTC().Format("02/01/2006 15:04")
}

// FormatCurrency renders an amount as pound sterling with two decimal
// places and UK thousands separators.
// Example: 1000 returns "£1,000.00"; -1234.5 returns "-£1,234.50".
// NaN and infinities render as "£0.00".
func FormatCurrency(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "£0.00"
	}
	d := decimal.NewFromFloat(value).Round(2)
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(fixed, ".")
	out := "£" + groupThousands(whole) + "." + frac
	if negative {
		out = "-" + out
	}
	return out
}

// groupThousands inserts comma separators into a plain digit string.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseUKDate parses a strict DD/MM/YYYY string into a UTC date.
// It returns nil for anything malformed: wrong segment count, non-numeric
// parts, or a day/month combination that does not exist.
func ParseUKDate(value string) *time.Time {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 3 {
		return nil
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises overflow (31/02 becomes 02/03 or 03/03), so a
	// round-trip mismatch means the calendar date never existed.
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return nil
	}
	return &t
}

// FormatOptionalCurrency renders a nullable amount, falling back to the
// "-" placeholder when the backend omitted the field.
func FormatOptionalCurrency(value *float64) string {
	if value == nil {
		return "-"
	}
	return FormatCurrency(*value)
}

// FormatOptionalNumber renders a nullable numeric field (hours, counts)
// with up to two decimal places, or the "-" placeholder.
func FormatOptionalNumber(value *float64) string {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return "-"
	}
	return decimal.NewFromFloat(*value).Round(2).String()
}

// ISODate renders a time as the bare ISO date the backend expects in query
// strings and payloads.
func ISODate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
