package catalog

import "strconv"

// DeriveSeasonCode derives a season code from the leading two digits of
// an HS code. Leading zeros are stripped, so "0101..." yields "1" and
// "0042..." yields "0". Returns "" when the prefix is not numeric.
func DeriveSeasonCode(code string) string {
	if len(code) < 2 {
		return ""
	}
	prefix := code[:2]
	n, err := strconv.Atoi(prefix)
	if err != nil || !allDigits(prefix) {
		return ""
	}
	return strconv.Itoa(n)
}

// DeriveHeadingCode derives a heading code from the leading four digits
// of an HS code, kept verbatim with any leading zeros. Returns "" when
// the prefix is not numeric.
func DeriveHeadingCode(code string) string {
	if len(code) < 4 {
		return ""
	}
	prefix := code[:4]
	if !allDigits(prefix) {
		return ""
	}
	return prefix
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
