package internal

import (
	"fmt"
	"strings"
)

// ParseLogical normalizes a loosely-typed boolean option ("true", "1", "on",
// "yes" and their negatives, case-insensitive) into a strict bool. The core
// API takes real booleans; this conversion happens once, at the boundary
// layer that received the string.
func ParseLogical(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "on", "yes":
		return true, nil
	case "false", "0", "off", "no":
		return false, nil
	default:
		return false, fmt.Errorf("cannot interpret %q as a boolean option", s)
	}
}
