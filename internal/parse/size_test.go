package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffithind/sysstatus/internal/errors"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		// Plain bytes
		{"bytes", "512", 512},
		{"zero", "0", 0},
		{"zero with unit", "0G", 0},

		// Kilobytes
		{"kilobytes upper", "2K", 2 * 1024},
		{"kilobytes lower", "2k", 2 * 1024},

		// Megabytes
		{"megabytes upper", "256M", 256 * 1024 * 1024},
		{"megabytes lower", "256m", 256 * 1024 * 1024},

		// Gigabytes
		{"gigabytes", "1G", 1024 * 1024 * 1024},
		{"gigabytes lower", "4g", 4 * 1024 * 1024 * 1024},

		// Terabytes and petabytes
		{"terabytes", "1T", 1 << 40},
		{"petabytes", "1P", 1 << 50},
		{"petabytes lower", "3p", 3 << 50},

		// Decimal values round to nearest byte
		{"float megabytes", "1.5M", 1572864},
		{"float kilobytes", "0.5K", 512},
		{"fraction rounds up", "1.0005K", 1025},
		{"fraction rounds down", "10.4", 10},
		{"fraction rounds half away from zero", "10.5", 11},

		// Negative values pass through multiplied
		{"negative bytes", "-1", -1},
		{"negative megabytes", "-1M", -1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseSize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseSizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  string
	}{
		{"empty", "", errors.CodeSizeEmpty},
		{"non-numeric prefix", "abcM", errors.CodeSizeInvalid},
		{"unit only", "M", errors.CodeSizeInvalid},
		{"unknown unit", "100X", errors.CodeSizeInvalid},
		{"byte suffix is not a unit", "10MB", errors.CodeSizeInvalid},
		{"whitespace is not trimmed", " 1K", errors.CodeSizeInvalid},
		{"infinity", "InfK", errors.CodeSizeInvalid},
		{"nan", "NaN", errors.CodeSizeInvalid},
		{"overflow", "9000000P", errors.CodeSizeOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseSize(tt.input)
			require.Error(t, err)
			assert.Zero(t, result)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
			assert.Equal(t, errors.CategoryInput, errors.GetCategory(err))
		})
	}
}

func TestParseSizeLargestExact(t *testing.T) {
	result, err := ParseSize("8191P")
	require.NoError(t, err)
	assert.Equal(t, int64(8191)<<50, result)
}

func TestMustParseSize(t *testing.T) {
	assert.Equal(t, int64(64*1024*1024), MustParseSize("64M"))
	assert.Panics(t, func() { MustParseSize("") })
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{256 * 1024 * 1024, "256 MiB"},
		{1 << 30, "1.0 GiB"},
		{-5, "-5 B"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSize(tt.input))
		})
	}
}
