package util

import (
	"strings"
	"testing"
)

func TestValidateEmail_Valid(t *testing.T) {
	testCases := []string{
		"a@x.com",
		"first.last@example.org",
		"user+tag@mail.co.uk",
	}

	for _, email := range testCases {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", email, err)
		}
	}
}

func TestValidateEmail_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"   ",
		"no-at-sign",
		"two@@x.com",
		"spaces in@x.com",
		"@x.com",
		"a@",
		"a@nodot",
		strings.Repeat("a", 250) + "@x.com",
	}

	for _, email := range testCases {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", email)
		}
	}
}

func TestValidateFullName(t *testing.T) {
	if err := ValidateFullName("Ada Lovelace"); err != nil {
		t.Errorf("ValidateFullName error = %v, want nil", err)
	}
	if err := ValidateFullName("  "); err == nil {
		t.Error("ValidateFullName of blank name error = nil, want error")
	}
	if err := ValidateFullName(strings.Repeat("x", 129)); err == nil {
		t.Error("ValidateFullName of overlong name error = nil, want error")
	}
}

func TestValidateMemo(t *testing.T) {
	if err := ValidateMemo(""); err != nil {
		t.Errorf("ValidateMemo(\"\") error = %v, want nil", err)
	}
	if err := ValidateMemo(strings.Repeat("x", 256)); err == nil {
		t.Error("ValidateMemo of overlong memo error = nil, want error")
	}
}
