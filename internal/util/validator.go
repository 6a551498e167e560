package util

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the shape of an email address. Deliverability is
// not our problem; this only keeps junk out of the unique index.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	if len(email) > 255 {
		return fmt.Errorf("email too long, max 255 characters")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateFullName checks a display name (non-empty, bounded).
func ValidateFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("full name is empty")
	}
	if len(name) > 128 {
		return fmt.Errorf("full name too long, max 128 characters")
	}
	return nil
}

// ValidateMemo bounds the free-text memo on a purchase.
func ValidateMemo(memo string) error {
	if len(memo) > 255 {
		return fmt.Errorf("memo too long, max 255 characters")
	}
	return nil
}
