package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Field pairs the text a user typed with the number it parses to. The raw text is kept
// so partial input such as "-" or "1,000," round-trips unchanged.
type Field struct {
	Raw   string  `json:"raw"`
	Value float64 `json:"value"`
}

// NewField parses raw with ParseOrZero.
func NewField(raw string) Field {
	return Field{Raw: raw, Value: ParseOrZero(raw)}
}

// ParseOrZero is the parsing rule shared by every numeric input. Thousands separators
// (commas) are dropped and the longest leading decimal literal is read, so "12abc" is 12.
// Anything that does not yield a finite number is 0.
func ParseOrZero(raw string) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	s = leadingNumber(s)
	if s == "" {
		return 0
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return FiniteOrZero(value)
}

// leadingNumber returns the prefix of s matching [+-]digits[.digits][e[+-]digits],
// with at least one mantissa digit, or "" if there is none.
func leadingNumber(s string) string {
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
		// "12." and "1.e5" keep the dot when the integer part has digits.
		if frac > 0 || digits > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	return s[:i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FiniteOrZero maps NaN and infinities to 0 and returns every other value unchanged.
func FiniteOrZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}

// Subtotal is the line amount of a priced item: price times quantity.
func Subtotal(price, quantity Field) float64 {
	return FiniteOrZero(price.Value * quantity.Value)
}
