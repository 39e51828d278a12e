package formatter

import "strconv"

// FormatAmount renders a currency amount with dot thousand separators,
// e.g. 228500 -> "228.500".
func FormatAmount(v int) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.Itoa(v)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "." + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

// Truncate shortens s to max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

// OrDash returns s, or "-" when empty. Used for optional table cells.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
