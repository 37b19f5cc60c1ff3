// Package validate holds the account field rules shared by signup and profile updates.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.]+@[a-zA-Z0-9]+\.[a-zA-Z]{2,}$`)

// PasswordSpecials are the characters that satisfy the special-character rule.
const PasswordSpecials = "@$!%*?&"

// PasswordRules describes the password policy for users who entered a weak password.
var PasswordRules = []string{
	"8 to 12 characters long",
	"At least one uppercase letter (A-Z)",
	"At least one lowercase letter (a-z)",
	"At least one number (0-9)",
	"At least one special character (" + PasswordSpecials + ")",
}

// Email reports whether s looks like localpart@domain.tld.
// The local part allows letters, digits and dots; the domain letters and digits; the TLD two or more letters.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Password reports whether p satisfies every rule in PasswordRules.
func Password(p string) bool {
	if n := utf8.RuneCountInString(p); n < 8 || n > 12 {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
		if strings.ContainsRune(PasswordSpecials, r) {
			special = true
		}
	}
	return upper && lower && digit && special
}
