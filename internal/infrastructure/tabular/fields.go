package tabular

import (
	"strconv"
	"strings"
)

// CleanString trims surrounding whitespace from a raw cell value
func CleanString(v string) string {
	return strings.TrimSpace(v)
}

// IntOrNil parses an integer cell, tolerating float renderings that
// spreadsheets produce ("12.0" yields 12). Blank or unparseable
// values yield nil.
func IntOrNil(v string) *int {
	s := CleanString(v)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}
