// Package normalize trims and case-folds user-supplied values before they
// are stored or compared.
package normalize

import "strings"

// Email lowercases and trims an address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace and preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role uppercases a carpool role (DRIVER, RIDER, VIEWER).
func Role(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Status uppercases an account status (ACTIVE, INACTIVE).
func Status(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
