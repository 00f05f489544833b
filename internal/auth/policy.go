package auth

import "strings"

const minStrongLength = 8

// IsStrongPassword reports whether password is at least 8 characters long, is made only of
// letters, digits and the symbols !@#$%^&*()_+, and contains at least one of each class.
// It is advisory: the store does not enforce it.
func IsStrongPassword(password string) bool {
	if len(password) < minStrongLength {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for i := 0; i < len(password); i++ {
		ch := password[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		case strings.IndexByte(symbolChars, ch) >= 0:
			hasSymbol = true
		default:
			return false
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
