package idhash

import (
	"crypto/sha256"
	"fmt"
	"strconv"

	"github.com/mr-tron/base58"

	"kundali-engine/internal/domain"
)

// ChartID computes the deterministic content address of a birth input
// using SHA256.
// Formula: base58(SHA256(date|clock|latitude|longitude|timezone))
// The clock field reads "unknown" for untimed births, so a birth with
// an unknown clock never collides with the same birth at midnight.
// Coordinates encode in shortest round-trip form; equal float64 values
// always produce the same string.
func ChartID(b domain.BirthInput) string {
	clock := "unknown"
	if hour, minute, second, ok := b.Clock(); ok {
		clock = fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
	}

	data := fmt.Sprintf("%04d-%02d-%02d|%s|%s|%s|%s",
		b.Year, b.Month, b.Day,
		clock,
		strconv.FormatFloat(b.Latitude, 'f', -1, 64),
		strconv.FormatFloat(b.Longitude, 'f', -1, 64),
		b.Timezone,
	)

	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:])
}
