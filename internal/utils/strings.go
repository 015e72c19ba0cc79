package utils

import (
	"strings"
)

// NormalizeSpace trims and collapses repeated whitespace into a single
// space. Guest names come from a free-text form field.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
