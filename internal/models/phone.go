package models

import "regexp"

var (
	nonDigitRE = regexp.MustCompile(`\D`)
	fullNameRE = regexp.MustCompile(`^[А-Яа-яЁё\s\-]{5,100}$`)
)

// NormalizePhone canonicalizes a Russian phone number to +7XXXXXXXXXX.
// Accepts +7/8 prefixes with arbitrary separators. Returns false for
// anything that is not exactly 11 digits starting with 7 or 8.
func NormalizePhone(raw string) (string, bool) {
	digits := nonDigitRE.ReplaceAllString(raw, "")
	if len(digits) != 11 {
		return "", false
	}
	if digits[0] != '7' && digits[0] != '8' {
		return "", false
	}
	return "+7" + digits[1:], true
}

// LooksLikePhone is a coarse heuristic: ten or more digits in the text.
// Used to catch a phone number typed into the department step.
func LooksLikePhone(text string) bool {
	return len(nonDigitRE.ReplaceAllString(text, "")) >= 10
}

// ValidFullName accepts cyrillic letters, spaces and hyphens, 5 to 100 runes.
func ValidFullName(name string) bool {
	return fullNameRE.MatchString(name)
}
