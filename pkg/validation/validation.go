package validation

import (
	"regexp"
	"strings"
)

var languageTagRegex = regexp.MustCompile(`^[A-Za-z]{2,3}([-_][A-Za-z0-9]{2,8})*$`)

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// IsValidLatitude reports whether lat is within [-90, 90]
func IsValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lon is within [-180, 180]
func IsValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// IsValidLanguageTag accepts locale identifiers such as "fr", "en-US" or "zh_Hant_TW"
func IsValidLanguageTag(tag string) bool {
	return languageTagRegex.MatchString(tag)
}

// IsDigit reports whether s is exactly one ASCII digit
func IsDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}
