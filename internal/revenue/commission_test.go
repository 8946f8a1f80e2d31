package revenue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommission(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"15%", 0.15, true},
		{"15", 0.15, true},
		{" 12.5 % ", 0.125, true},
		{"10% of net", 0.10, true},
		{".5%", 0.005, true},
		{"-3%", -0.03, true},
		{"1e1%", 0.10, true},
		{"7e%", 0.07, true},
		{"15%%", 0.15, true},
		{"abc", 0, false},
		{"%", 0, false},
		{"   ", 0, false},
		{"Infinity", 0, false},
		{"1e999", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCommission(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "15.0%", FormatRate(0.15))
	assert.Equal(t, "12.5%", FormatRate(0.125))
	assert.True(t, strings.HasSuffix(FormatRate(0.0333), "%"))
}
