package revenue

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCommission turns free-text commission such as "15%", " 12.5 % " or
// "10% of net" into a rate (0.15, 0.125, 0.10). The first '%' is dropped and
// the longest leading decimal number is used, so trailing text is ignored.
// ok is false when no finite number leads the text.
func ParseCommission(commission string) (rate float64, ok bool) {
	s := strings.TrimSpace(strings.Replace(commission, "%", "", 1))
	prefix := leadingDecimal(s)
	if prefix == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v / 100, true
}

// FormatRate renders a rate the way the report shows it: one decimal, percent sign.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// leadingDecimal returns the longest prefix of s of the form
// [+-]digits[.digits][(e|E)[+-]digits], or "" when there is none.
func leadingDecimal(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}

	// exponent only counts when it has digits
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		start := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > start {
			i = j
		}
	}
	return s[:i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
