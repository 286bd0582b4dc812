package parse

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/griffithind/sysstatus/internal/errors"
)

// unitExponents maps a size suffix to its power of 1024.
var unitExponents = map[byte]int{
	'K': 1,
	'M': 2,
	'G': 3,
	'T': 4,
	'P': 5,
}

// maxBytes is 2^63, the first float64 that no longer fits in an int64.
const maxBytes = 0x1p63

// ParseSize parses a byte size string into a byte count.
// Supported formats:
//   - Plain number: "1024" (interpreted as bytes)
//   - With unit: "4K", "512m", "2G", "1t", "1P"
//   - Decimal and signed values: "1.5G", "-1M"
//
// Fractional results are rounded to the nearest byte. The text is not
// trimmed; callers reading user input should trim it first.
//
// Errors are *errors.StatusError with code SIZE_EMPTY, SIZE_INVALID or
// SIZE_OVERFLOW.
func ParseSize(text string) (int64, error) {
	if text == "" {
		return 0, errors.SizeEmpty()
	}

	numPart := text
	exp := 0
	if e, ok := unitExponents[upper(text[len(text)-1])]; ok {
		exp = e
		numPart = text[:len(text)-1]
	}

	if numPart == "" {
		return 0, errors.SizeInvalid(text, fmt.Errorf("missing number before unit"))
	}

	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, errors.SizeInvalid(text, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.SizeInvalid(text, fmt.Errorf("not a finite number"))
	}

	bytes := math.Round(value * math.Pow(1024, float64(exp)))
	if bytes >= maxBytes || bytes < -maxBytes {
		return 0, errors.SizeOverflow(text)
	}

	return int64(bytes), nil
}

// MustParseSize is like ParseSize but panics on error.
func MustParseSize(text string) int64 {
	n, err := ParseSize(text)
	if err != nil {
		panic(err)
	}
	return n
}

// FormatSize renders a byte count using IEC units, e.g. "256 MiB".
// Negative counts are printed as plain bytes.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return humanize.IBytes(uint64(bytes))
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
