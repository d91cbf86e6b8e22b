package inventory

import (
	"strconv"
	"strings"
)

// DefaultQuickQuantity is used by the +/- keys when the amount field holds no positive number.
const DefaultQuickQuantity = 1

// ParseQuickQuantity reads the amount for a quick +/- press. Anything that is
// not a positive number falls back to DefaultQuickQuantity.
func ParseQuickQuantity(text string) int {
	if n, ok := ParseBulkQuantity(text); ok {
		return n
	}
	return DefaultQuickQuantity
}

// ParseBulkQuantity reads the amount for an explicit bulk add or remove.
// Only positive numbers are accepted. Like a form field, a leading number
// followed by other characters counts ("12 Stk" is 12).
func ParseBulkQuantity(text string) (int, bool) {
	n, ok := leadingInt(text)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

func leadingInt(text string) (int, bool) {
	s := strings.TrimSpace(text)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
