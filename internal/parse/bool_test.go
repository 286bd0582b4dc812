package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoolString(t *testing.T) {
	var nilPtr *int
	one := 1

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, "false"},
		{"false", false, "false"},
		{"true", true, "true"},
		{"empty string", "", "false"},
		{"zero string", "0", "false"},
		{"false string", "false", "false"},
		{"false string upper", "FALSE", "false"},
		{"on string", "On", "true"},
		{"one string", "1", "true"},
		{"zero int", 0, "false"},
		{"int", 3, "true"},
		{"zero uint", uint8(0), "false"},
		{"zero float", 0.0, "false"},
		{"float", 0.1, "true"},
		{"empty slice", []string{}, "false"},
		{"slice", []string{"a"}, "true"},
		{"empty map", map[string]int{}, "false"},
		{"nil pointer", nilPtr, "false"},
		{"pointer", &one, "true"},
		{"struct", struct{}{}, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BoolString(tt.input))
		})
	}
}
