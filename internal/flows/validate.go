package flows

import "regexp"

// Username rule: 3–20 characters, letters, digits, underscore.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// ValidUsername reports whether name satisfies the registration pattern.
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// ValidPassword reports whether pwd satisfies the complexity rule: at least
// 8 characters with one uppercase letter, one lowercase letter, and one
// digit.
func ValidPassword(pwd string) bool {
	if len(pwd) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range pwd {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}
