package domain

import (
	"strings"
	"unicode/utf8"
)

// Profile holds the account details shown on the account panel.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// Initials returns the first rune of the first and last names.
func (p Profile) Initials() string {
	return firstRune(p.FirstName) + firstRune(p.LastName)
}

// DisplayName joins first and last name, falling back to the username.
func (p Profile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Username
	}
	return name
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(strings.TrimSpace(s))
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return strings.ToUpper(string(r))
}
