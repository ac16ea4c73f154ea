package macro

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatInterval renders seconds with two decimals, e.g. "0.50".
func FormatInterval(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%.2f", seconds)
}

// ParseInterval reads a user-entered interval in seconds. It accepts a
// decimal comma and rejects anything that is not a positive finite number.
func ParseInterval(input string) (float64, error) {
	s := strings.TrimSpace(strings.ReplaceAll(input, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidInterval)
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, input)
	}
	if !ValidInterval(val) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, input)
	}
	return val, nil
}
